// Package sem defines the semantic-model document produced by the
// upstream front end. The middle end only reads it; the shapes here
// mirror the wire schema field for field.
package sem

// Model is the root of a semantic-model document.
type Model struct {
	Profile     string        `json:"profile,omitempty"`
	EntryPoints []EntryPoint  `json:"entryPoints,omitempty"`
	Symbols     []Symbol      `json:"symbols,omitempty"`
	Types       []TypeBinding `json:"types,omitempty"`
	Syntax      Syntax        `json:"syntax"`
	Techniques  []Technique   `json:"techniques,omitempty"`
}

// EntryPoint describes a candidate shader entry.
type EntryPoint struct {
	Name     string `json:"name"`
	Stage    string `json:"stage,omitempty"`
	SymbolID int32  `json:"symbolId,omitempty"`
}

// Symbol is a resolved declaration.
type Symbol struct {
	ID             int32     `json:"id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name,omitempty"`
	Type           string    `json:"type,omitempty"`
	ParentSymbolID int32     `json:"parentSymbolId,omitempty"`
	DeclNodeID     int32     `json:"declNodeId,omitempty"`
	Semantic       *Semantic `json:"semantic,omitempty"`
}

// Semantic is an HLSL binding semantic, split into name and index
// (POSITION + 0 renders as POSITION0).
type Semantic struct {
	Name  string `json:"name"`
	Index *int   `json:"index,omitempty"`
}

// TypeBinding maps an expression node to its resolved type descriptor.
type TypeBinding struct {
	NodeID int32  `json:"nodeId"`
	Type   string `json:"type"`
}

// Syntax carries the expression/statement graph.
type Syntax struct {
	Nodes []Node `json:"nodes,omitempty"`
}

// Node is one syntax-graph node. Which optional fields are meaningful
// depends on Kind.
type Node struct {
	ID                 int32      `json:"id"`
	Kind               string     `json:"kind"`
	Children           []ChildRef `json:"children,omitempty"`
	Operator           string     `json:"operator,omitempty"`
	Swizzle            string     `json:"swizzle,omitempty"`
	Text               string     `json:"text,omitempty"`
	CalleeName         string     `json:"calleeName,omitempty"`
	CalleeKind         string     `json:"calleeKind,omitempty"`
	ReferencedSymbolID int32      `json:"referencedSymbolId,omitempty"`
}

// ChildRef is an edge from a node to one of its children, labeled with
// the child's role (condition, then, body, left, right, ...).
type ChildRef struct {
	Role   string `json:"role,omitempty"`
	NodeID int32  `json:"nodeId"`
}

// Technique mirrors an effect technique declaration.
type Technique struct {
	Name   string `json:"name"`
	Passes []Pass `json:"passes,omitempty"`
}

// Pass is one render pass of a technique.
type Pass struct {
	Name    string            `json:"name"`
	Shaders []ShaderBinding   `json:"shaders,omitempty"`
	States  []StateAssignment `json:"states,omitempty"`
}

// ShaderBinding names the entry symbol a pass compiles for a stage.
type ShaderBinding struct {
	Stage   string `json:"stage,omitempty"`
	Profile string `json:"profile,omitempty"`
	Entry   string `json:"entry"`
}

// StateAssignment is one fixed-function state setting.
type StateAssignment struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node kinds understood by the lowering pipeline. Anything else is an
// unsupported construct.
const (
	KindIdentifier       = "Identifier"
	KindMemberAccess     = "MemberAccessExpression"
	KindLiteral          = "LiteralExpression"
	KindUnary            = "UnaryExpression"
	KindBinary           = "BinaryExpression"
	KindCall             = "CallExpression"
	KindCast             = "CastExpression"
	KindIndex            = "IndexExpression"
	KindBlockStatement   = "BlockStatement"
	KindExprStatement    = "ExpressionStatement"
	KindReturnStatement  = "ReturnStatement"
	KindIfStatement      = "IfStatement"
	KindWhileStatement   = "WhileStatement"
	KindDoWhileStatement = "DoWhileStatement"
	KindForStatement     = "ForStatement"
	KindVarDecl          = "VariableDeclarationStatement"
	KindFunctionDecl     = "FunctionDeclaration"
)

// Child roles.
const (
	RoleLeft        = "left"
	RoleRight       = "right"
	RoleOperand     = "operand"
	RoleArgument    = "argument"
	RoleTarget      = "target"
	RoleBase        = "base"
	RoleIndex       = "index"
	RoleCondition   = "condition"
	RoleThen        = "then"
	RoleElse        = "else"
	RoleBody        = "body"
	RoleInit        = "init"
	RoleIncrement   = "increment"
	RoleExpression  = "expression"
	RoleStatement   = "statement"
	RoleInitializer = "initializer"
)

// Symbol kinds referenced by lowering.
const (
	SymParameter   = "Parameter"
	SymGlobal      = "GlobalVariable"
	SymCBuffer     = "CBuffer"
	SymBuffer      = "Buffer"
	SymSampler     = "Sampler"
	SymStructField = "StructMember"
	SymCBufferVar  = "CBufferMember"
	SymFunction    = "Function"
	SymLocal       = "Local"
)
