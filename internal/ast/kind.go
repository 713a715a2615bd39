package ast

import "fmt"

// Kind tags every node with its syntactic construct.
type Kind int

const (
	KindUnknown Kind = iota

	// Names and wrappers
	KindToken
	KindIdentifier
	KindNumericLiteral
	KindStringLiteral
	KindQualifiedName
	KindComputedPropertyName
	KindDecorator
	KindTypeParameter
	KindParameter

	// Types
	KindKeywordType
	KindTypeReference
	KindArrayType
	KindParenthesizedType

	// Members
	KindPropertySignature
	KindMethodSignature
	KindPropertyDeclaration
	KindMethodDeclaration
	KindConstructor
	KindGetAccessor
	KindSetAccessor
	KindSemicolonClassElement
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindSpreadAssignment
	KindEnumMember

	// Expressions
	KindTrueKeyword
	KindFalseKeyword
	KindNullKeyword
	KindThisKeyword
	KindSuperKeyword
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindCallExpression
	KindNewExpression
	KindTypeAssertionExpression
	KindParenthesizedExpression
	KindFunctionExpression
	KindArrowFunction
	KindClassExpression
	KindDeleteExpression
	KindTypeOfExpression
	KindVoidExpression
	KindAwaitExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindBinaryExpression
	KindConditionalExpression
	KindYieldExpression
	KindSpreadElement
	KindOmittedExpression
	KindAsExpression
	KindConnectExpression
	KindWalrusDeclaration
	KindExpressionWithTypeArguments

	// Statements
	KindBlock
	KindEmptyStatement
	KindVariableStatement
	KindExpressionStatement
	KindIfStatement
	KindElifStatement
	KindDoStatement
	KindWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindContinueStatement
	KindBreakStatement
	KindFallthroughStatement
	KindReturnStatement
	KindWithStatement
	KindSwitchStatement
	KindLabeledStatement
	KindThrowStatement
	KindTryStatement
	KindDebuggerStatement
	KindUsingStatement

	// Declarations
	KindVariableDeclaration
	KindVariableDeclarationList
	KindFunctionDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindEnumDeclaration
	KindModuleDeclaration
	KindModuleBlock
	KindImportDeclaration
	KindImportClause
	KindNamespaceImport
	KindNamedImports
	KindImportSpecifier
	KindExportAssignment
	KindExportDeclaration
	KindNamedExports
	KindExportSpecifier
	KindNodeDeclaration
	KindSubnetDeclaration
	KindNodeBlock
	KindAllPortsTypeDeclaration
	KindPortTypeDeclaration
	KindStateDeclaration
	KindMissingDeclaration

	// Clauses
	KindCaseBlock
	KindCaseClause
	KindDefaultClause
	KindHeritageClause
	KindCatchClause

	KindSourceFile

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:                     "Unknown",
	KindToken:                       "Token",
	KindIdentifier:                  "Identifier",
	KindNumericLiteral:              "NumericLiteral",
	KindStringLiteral:               "StringLiteral",
	KindQualifiedName:               "QualifiedName",
	KindComputedPropertyName:        "ComputedPropertyName",
	KindDecorator:                   "Decorator",
	KindTypeParameter:               "TypeParameter",
	KindParameter:                   "Parameter",
	KindKeywordType:                 "KeywordType",
	KindTypeReference:               "TypeReference",
	KindArrayType:                   "ArrayType",
	KindParenthesizedType:           "ParenthesizedType",
	KindPropertySignature:           "PropertySignature",
	KindMethodSignature:             "MethodSignature",
	KindPropertyDeclaration:         "PropertyDeclaration",
	KindMethodDeclaration:           "MethodDeclaration",
	KindConstructor:                 "Constructor",
	KindGetAccessor:                 "GetAccessor",
	KindSetAccessor:                 "SetAccessor",
	KindSemicolonClassElement:       "SemicolonClassElement",
	KindPropertyAssignment:          "PropertyAssignment",
	KindShorthandPropertyAssignment: "ShorthandPropertyAssignment",
	KindSpreadAssignment:            "SpreadAssignment",
	KindEnumMember:                  "EnumMember",
	KindTrueKeyword:                 "TrueKeyword",
	KindFalseKeyword:                "FalseKeyword",
	KindNullKeyword:                 "NullKeyword",
	KindThisKeyword:                 "ThisKeyword",
	KindSuperKeyword:                "SuperKeyword",
	KindArrayLiteralExpression:      "ArrayLiteralExpression",
	KindObjectLiteralExpression:     "ObjectLiteralExpression",
	KindPropertyAccessExpression:    "PropertyAccessExpression",
	KindElementAccessExpression:     "ElementAccessExpression",
	KindCallExpression:              "CallExpression",
	KindNewExpression:               "NewExpression",
	KindTypeAssertionExpression:     "TypeAssertionExpression",
	KindParenthesizedExpression:     "ParenthesizedExpression",
	KindFunctionExpression:          "FunctionExpression",
	KindArrowFunction:               "ArrowFunction",
	KindClassExpression:             "ClassExpression",
	KindDeleteExpression:            "DeleteExpression",
	KindTypeOfExpression:            "TypeOfExpression",
	KindVoidExpression:              "VoidExpression",
	KindAwaitExpression:             "AwaitExpression",
	KindPrefixUnaryExpression:       "PrefixUnaryExpression",
	KindPostfixUnaryExpression:      "PostfixUnaryExpression",
	KindBinaryExpression:            "BinaryExpression",
	KindConditionalExpression:       "ConditionalExpression",
	KindYieldExpression:             "YieldExpression",
	KindSpreadElement:               "SpreadElement",
	KindOmittedExpression:           "OmittedExpression",
	KindAsExpression:                "AsExpression",
	KindConnectExpression:           "ConnectExpression",
	KindWalrusDeclaration:           "WalrusDeclaration",
	KindExpressionWithTypeArguments: "ExpressionWithTypeArguments",
	KindBlock:                       "Block",
	KindEmptyStatement:              "EmptyStatement",
	KindVariableStatement:           "VariableStatement",
	KindExpressionStatement:         "ExpressionStatement",
	KindIfStatement:                 "IfStatement",
	KindElifStatement:               "ElifStatement",
	KindDoStatement:                 "DoStatement",
	KindWhileStatement:              "WhileStatement",
	KindForStatement:                "ForStatement",
	KindForInStatement:              "ForInStatement",
	KindForOfStatement:              "ForOfStatement",
	KindContinueStatement:           "ContinueStatement",
	KindBreakStatement:              "BreakStatement",
	KindFallthroughStatement:        "FallthroughStatement",
	KindReturnStatement:             "ReturnStatement",
	KindWithStatement:               "WithStatement",
	KindSwitchStatement:             "SwitchStatement",
	KindLabeledStatement:            "LabeledStatement",
	KindThrowStatement:              "ThrowStatement",
	KindTryStatement:                "TryStatement",
	KindDebuggerStatement:           "DebuggerStatement",
	KindUsingStatement:              "UsingStatement",
	KindVariableDeclaration:         "VariableDeclaration",
	KindVariableDeclarationList:     "VariableDeclarationList",
	KindFunctionDeclaration:         "FunctionDeclaration",
	KindClassDeclaration:            "ClassDeclaration",
	KindInterfaceDeclaration:        "InterfaceDeclaration",
	KindTypeAliasDeclaration:        "TypeAliasDeclaration",
	KindEnumDeclaration:             "EnumDeclaration",
	KindModuleDeclaration:           "ModuleDeclaration",
	KindModuleBlock:                 "ModuleBlock",
	KindImportDeclaration:           "ImportDeclaration",
	KindImportClause:                "ImportClause",
	KindNamespaceImport:             "NamespaceImport",
	KindNamedImports:                "NamedImports",
	KindImportSpecifier:             "ImportSpecifier",
	KindExportAssignment:            "ExportAssignment",
	KindExportDeclaration:           "ExportDeclaration",
	KindNamedExports:                "NamedExports",
	KindExportSpecifier:             "ExportSpecifier",
	KindNodeDeclaration:             "NodeDeclaration",
	KindSubnetDeclaration:           "SubnetDeclaration",
	KindNodeBlock:                   "NodeBlock",
	KindAllPortsTypeDeclaration:     "AllPortsTypeDeclaration",
	KindPortTypeDeclaration:         "PortTypeDeclaration",
	KindStateDeclaration:            "StateDeclaration",
	KindMissingDeclaration:          "MissingDeclaration",
	KindCaseBlock:                   "CaseBlock",
	KindCaseClause:                  "CaseClause",
	KindDefaultClause:               "DefaultClause",
	KindHeritageClause:              "HeritageClause",
	KindCatchClause:                 "CatchClause",
	KindSourceFile:                  "SourceFile",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
