package ast

// Expression grammar levels. Each level is a closed set of kinds and every
// level contains the one before it:
//
//	Primary ⊂ Member ⊂ LeftHand ⊂ Update ⊂ Unary ⊂ Binary ⊂ Conditional ⊂ Assign ⊂ Connect ⊂ Expression

// IsPrimaryExp reports whether k is a primary expression.
func IsPrimaryExp(k Kind) bool {
	switch k {
	case KindIdentifier, KindNumericLiteral, KindStringLiteral,
		KindTrueKeyword, KindFalseKeyword, KindNullKeyword, KindThisKeyword, KindSuperKeyword,
		KindArrayLiteralExpression, KindObjectLiteralExpression, KindParenthesizedExpression,
		KindFunctionExpression, KindClassExpression:
		return true
	}
	return false
}

// IsMemberExp reports whether k is a member expression: a primary expression,
// a property or element access, or a new expression.
func IsMemberExp(k Kind) bool {
	switch k {
	case KindPropertyAccessExpression, KindElementAccessExpression, KindNewExpression,
		KindExpressionWithTypeArguments:
		return true
	}
	return IsPrimaryExp(k)
}

// IsLeftHandExp reports whether k may appear on the left of an assignment or
// as the operand of ++ and --.
func IsLeftHandExp(k Kind) bool {
	return k == KindCallExpression || IsMemberExp(k)
}

// IsUpdateExp reports whether k is a left-hand expression or a ++/-- form.
func IsUpdateExp(k Kind) bool {
	return k == KindPrefixUnaryExpression || k == KindPostfixUnaryExpression || IsLeftHandExp(k)
}

// IsUnaryExp reports whether k is a unary expression.
func IsUnaryExp(k Kind) bool {
	switch k {
	case KindDeleteExpression, KindTypeOfExpression, KindVoidExpression, KindAwaitExpression,
		KindTypeAssertionExpression:
		return true
	}
	return IsUpdateExp(k)
}

// IsBinaryExp reports whether k is a binary operator expression or anything tighter.
func IsBinaryExp(k Kind) bool {
	return k == KindBinaryExpression || k == KindAsExpression || IsUnaryExp(k)
}

// IsConditionalExp reports whether k is a conditional expression or anything tighter.
func IsConditionalExp(k Kind) bool {
	return k == KindConditionalExpression || IsBinaryExp(k)
}

// IsAssignExp reports whether k is an assignment-level expression.
func IsAssignExp(k Kind) bool {
	switch k {
	case KindArrowFunction, KindYieldExpression, KindSpreadElement:
		return true
	}
	return IsConditionalExp(k)
}

// IsConnectExp reports whether k is a connection or anything tighter.
func IsConnectExp(k Kind) bool {
	return k == KindConnectExpression || IsAssignExp(k)
}

// IsExpression reports whether k is any expression kind.
func IsExpression(k Kind) bool {
	return k == KindWalrusDeclaration || k == KindOmittedExpression || IsConnectExp(k)
}

// IsStatement reports whether k is a statement or declaration kind.
func IsStatement(k Kind) bool {
	return k >= KindBlock && k <= KindUsingStatement || IsDeclarationStatement(k)
}

// IsDeclarationStatement reports whether k is a declaration usable in statement position.
func IsDeclarationStatement(k Kind) bool {
	switch k {
	case KindFunctionDeclaration, KindClassDeclaration, KindInterfaceDeclaration,
		KindTypeAliasDeclaration, KindEnumDeclaration, KindModuleDeclaration,
		KindImportDeclaration, KindExportAssignment, KindExportDeclaration,
		KindNodeDeclaration, KindSubnetDeclaration,
		KindAllPortsTypeDeclaration, KindPortTypeDeclaration, KindStateDeclaration,
		KindMissingDeclaration:
		return true
	}
	return false
}

// IsTypeNode reports whether k is a type annotation kind.
func IsTypeNode(k Kind) bool {
	return k >= KindKeywordType && k <= KindParenthesizedType
}

// IsFunctionLike reports whether k has parameters and an optional body.
func IsFunctionLike(k Kind) bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunction,
		KindMethodDeclaration, KindConstructor, KindGetAccessor, KindSetAccessor,
		KindMethodSignature:
		return true
	}
	return false
}
