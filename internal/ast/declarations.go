package ast

import "nodelang/internal/token"

// ============================================================
// Variables
// ============================================================

// VariableDeclarationList is the declarations after var, let or const. The
// keyword is recorded in Flags (FlagLet, FlagConst or neither for var).
type VariableDeclarationList struct {
	NodeBase
	Declarations *NodeList[*VariableDeclaration] `json:"declarations"`
}

// VariableDeclaration is name[: T][= init].
type VariableDeclaration struct {
	NodeBase
	Name        *Identifier `json:"name"`
	Type        TypeNode    `json:"type,omitempty"`
	Initializer Expression  `json:"initializer,omitempty"`
}

// ============================================================
// Functions and classes
// ============================================================

// FunctionDeclaration is function* name<T>(params): R { body }. Body is nil
// for overloads and ambient declarations.
type FunctionDeclaration struct {
	StmtBase
	Modifiers      *Modifiers                `json:"modifiers,omitempty"`
	AsteriskToken  *TokenNode                `json:"asteriskToken,omitempty"`
	Name           *Identifier               `json:"name,omitempty"`
	TypeParameters *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Parameters     *NodeList[*Parameter]     `json:"parameters"`
	Type           TypeNode                  `json:"type,omitempty"`
	Body           *Block                    `json:"body,omitempty"`
}

// ClassLike holds the parts shared by class declarations and expressions.
type ClassLike struct {
	Modifiers       *Modifiers                 `json:"modifiers,omitempty"`
	Name            *Identifier                `json:"name,omitempty"`
	TypeParameters  *NodeList[*TypeParameter]  `json:"typeParameters,omitempty"`
	HeritageClauses *NodeList[*HeritageClause] `json:"heritageClauses,omitempty"`
	Members         *NodeList[Node]            `json:"members"`
}

// ClassDeclaration is a class in statement position.
type ClassDeclaration struct {
	StmtBase
	ClassLike
}

// HeritageClause is extends A, B or implements C.
type HeritageClause struct {
	NodeBase
	Token token.Kind                              `json:"token"`
	Types *NodeList[*ExpressionWithTypeArguments] `json:"types"`
}

// PropertyDeclaration is a class field: [modifiers] name[?][: T][= init];
type PropertyDeclaration struct {
	NodeBase
	Modifiers     *Modifiers `json:"modifiers,omitempty"`
	Name          Node       `json:"name"`
	QuestionToken *TokenNode `json:"questionToken,omitempty"`
	Type          TypeNode   `json:"type,omitempty"`
	Initializer   Expression `json:"initializer,omitempty"`
}

// MethodDeclaration is a method, constructor, get accessor or set accessor in
// a class or object literal. The kind tells which; constructors have no Name.
type MethodDeclaration struct {
	NodeBase
	Modifiers      *Modifiers                `json:"modifiers,omitempty"`
	AsteriskToken  *TokenNode                `json:"asteriskToken,omitempty"`
	Name           Node                      `json:"name,omitempty"`
	QuestionToken  *TokenNode                `json:"questionToken,omitempty"`
	TypeParameters *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Parameters     *NodeList[*Parameter]     `json:"parameters"`
	Type           TypeNode                  `json:"type,omitempty"`
	Body           *Block                    `json:"body,omitempty"`
}

// SemicolonClassElement is a stray ';' in a class body.
type SemicolonClassElement struct {
	NodeBase
}

// ============================================================
// Interfaces, aliases, enums, namespaces
// ============================================================

// InterfaceDeclaration is interface Name<T> extends A { members }.
type InterfaceDeclaration struct {
	StmtBase
	Modifiers       *Modifiers                 `json:"modifiers,omitempty"`
	Name            *Identifier                `json:"name"`
	TypeParameters  *NodeList[*TypeParameter]  `json:"typeParameters,omitempty"`
	HeritageClauses *NodeList[*HeritageClause] `json:"heritageClauses,omitempty"`
	Members         *NodeList[Node]            `json:"members"`
}

// PropertySignature is name[?]: T; inside an interface.
type PropertySignature struct {
	NodeBase
	Modifiers     *Modifiers `json:"modifiers,omitempty"`
	Name          Node       `json:"name"`
	QuestionToken *TokenNode `json:"questionToken,omitempty"`
	Type          TypeNode   `json:"type,omitempty"`
}

// MethodSignature is name<T>(params): R; inside an interface.
type MethodSignature struct {
	NodeBase
	Modifiers      *Modifiers                `json:"modifiers,omitempty"`
	Name           Node                      `json:"name"`
	QuestionToken  *TokenNode                `json:"questionToken,omitempty"`
	TypeParameters *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Parameters     *NodeList[*Parameter]     `json:"parameters"`
	Type           TypeNode                  `json:"type,omitempty"`
}

// TypeAliasDeclaration is type Name<T> = T;
type TypeAliasDeclaration struct {
	StmtBase
	Modifiers      *Modifiers                `json:"modifiers,omitempty"`
	Name           *Identifier               `json:"name"`
	TypeParameters *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Type           TypeNode                  `json:"type"`
}

// EnumDeclaration is enum Name { members }.
type EnumDeclaration struct {
	StmtBase
	Modifiers *Modifiers             `json:"modifiers,omitempty"`
	Name      *Identifier            `json:"name"`
	Members   *NodeList[*EnumMember] `json:"members"`
}

// EnumMember is name [= init].
type EnumMember struct {
	NodeBase
	Name        Node       `json:"name"`
	Initializer Expression `json:"initializer,omitempty"`
}

// ModuleDeclaration is namespace A.B { body }. A dotted name nests one
// ModuleDeclaration per segment; Body is a *ModuleBlock or the nested
// *ModuleDeclaration.
type ModuleDeclaration struct {
	StmtBase
	Modifiers *Modifiers  `json:"modifiers,omitempty"`
	Name      *Identifier `json:"name"`
	Body      Node        `json:"body"`
}

// ModuleBlock is the { statements } of a namespace.
type ModuleBlock struct {
	NodeBase
	Statements *NodeList[Statement] `json:"statements"`
}

// ============================================================
// Imports and exports
// ============================================================

// ImportDeclaration is import clause from "m"; or import "m";
type ImportDeclaration struct {
	StmtBase
	Modifiers       *Modifiers    `json:"modifiers,omitempty"`
	ImportClause    *ImportClause `json:"importClause,omitempty"`
	ModuleSpecifier Expression    `json:"moduleSpecifier"`
}

// ImportClause is default, * as ns or { a as b } (or default plus one of the others).
type ImportClause struct {
	NodeBase
	Name          *Identifier `json:"name,omitempty"`
	NamedBindings Node        `json:"namedBindings,omitempty"` // *NamespaceImport or *NamedImportsOrExports
}

// NamespaceImport is * as name.
type NamespaceImport struct {
	NodeBase
	Name *Identifier `json:"name"`
}

// NamedImportsOrExports is { a, b as c } in an import or export. The kind
// tells which.
type NamedImportsOrExports struct {
	NodeBase
	Elements *NodeList[*ImportOrExportSpecifier] `json:"elements"`
}

// ImportOrExportSpecifier is name or propertyName as name.
type ImportOrExportSpecifier struct {
	NodeBase
	PropertyName *Identifier `json:"propertyName,omitempty"`
	Name         *Identifier `json:"name"`
}

// ExportAssignment is export default expr; or export = expr;
type ExportAssignment struct {
	StmtBase
	Modifiers      *Modifiers `json:"modifiers,omitempty"`
	IsExportEquals bool       `json:"isExportEquals,omitempty"`
	Expression     Expression `json:"expression"`
}

// ExportDeclaration is export { a } [from "m"]; or export * from "m";
// ExportClause is nil for the star form.
type ExportDeclaration struct {
	StmtBase
	Modifiers       *Modifiers             `json:"modifiers,omitempty"`
	ExportClause    *NamedImportsOrExports `json:"exportClause,omitempty"`
	ModuleSpecifier Expression             `json:"moduleSpecifier,omitempty"`
}

// ============================================================
// Node and subnet blocks
// ============================================================

// NodeDeclaration is node Name<T>(params) { body } or the same with subnet.
// The kind tells which. Parameters is nil when the parameter list is omitted.
type NodeDeclaration struct {
	StmtBase
	Modifiers      *Modifiers                `json:"modifiers,omitempty"`
	Name           *Identifier               `json:"name"`
	TypeParameters *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Parameters     *NodeList[*Parameter]     `json:"parameters,omitempty"`
	Body           *NodeBlock                `json:"body"`
}

// NodeBlock is the body of a node or subnet: ordinary statements interleaved
// with port and state declarations.
type NodeBlock struct {
	NodeBase
	Statements *NodeList[Statement] `json:"statements"`
}

// AllPortsTypeDeclaration is $$: T, U; giving the types of all ports in order.
type AllPortsTypeDeclaration struct {
	StmtBase
	Types *NodeList[TypeNode] `json:"types"`
}

// PortTypeDeclaration is $name: T; for a single port. Name keeps the leading '$'.
type PortTypeDeclaration struct {
	StmtBase
	Name *Identifier `json:"name"`
	Type TypeNode    `json:"type"`
}

// StateDeclaration is state: expr; the initial state of a node.
type StateDeclaration struct {
	StmtBase
	Initializer Expression `json:"initializer"`
}

// MissingDeclaration holds decorators or modifiers that are not followed by a
// declaration.
type MissingDeclaration struct {
	StmtBase
	Modifiers *Modifiers `json:"modifiers,omitempty"`
}
