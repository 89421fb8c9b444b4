package java

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar covers declarations only. Method bodies, initializers and
// annotation arguments are consumed as balanced token groups.

var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DocComment", Pattern: `/\*\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\])+'`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_.]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Punct", Pattern: `[-+*/%&|^!~?:=<>.,;@()\[\]{}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var javaParser = participle.MustBuild[compilationUnit](
	participle.Lexer(javaLexer),
	participle.Elide("Whitespace", "Comment", "DocComment"),
	participle.UseLookahead(participle.MaxLookahead),
)

type compilationUnit struct {
	Package string        `parser:"( 'package' @Ident ( @'.' @Ident )* ';' )?"`
	Imports []*importDecl `parser:"@@*"`
	Types   []*typeDecl   `parser:"( @@ | ';' )*"`
}

type importDecl struct {
	Static bool   `parser:"'import' @'static'?"`
	Path   string `parser:"@Ident ( @'.' ( @Ident | @'*' ) )* ';'"`
}

type typeDecl struct {
	Pos    lexer.Position
	Prefix []*prefix   `parser:"@@*"`
	Class  *classDecl  `parser:"( @@"`
	Opaque *opaqueDecl `parser:"| @@ )"`
}

type prefix struct {
	Annotation *annotation `parser:"  @@"`
	Modifier   string      `parser:"| @( 'public' | 'protected' | 'private' | 'static' | 'abstract' | 'final' | 'default' | 'native' | 'synchronized' | 'transient' | 'volatile' | 'strictfp' | 'sealed' )"`
}

type annotation struct {
	Name string  `parser:"'@' (?! 'interface' ) @Ident ( @'.' @Ident )*"`
	Args *parens `parser:"@@?"`
}

type classDecl struct {
	Kind       string       `parser:"@( 'class' | 'interface' )"`
	Name       string       `parser:"@Ident"`
	TypeParams []*typeParam `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Heritage   []string     `parser:"@( ~'{' )*"`
	Members    []*member    `parser:"'{' ( @@ | ';' )* '}'"`
}

// opaqueDecl is a declaration whose body is skipped: enums, records and
// annotation types never carry value-type properties.
type opaqueDecl struct {
	Kind   string   `parser:"@( 'enum' | 'record' | '@' 'interface' )"`
	Name   string   `parser:"@Ident"`
	Header []string `parser:"@( ~'{' )*"`
	Body   *block   `parser:"@@"`
}

type typeParam struct {
	Name   string     `parser:"@Ident"`
	Bounds []*typeRef `parser:"( 'extends' @@ ( '&' @@ )* )?"`
}

type typeRef struct {
	Name string     `parser:"@Ident ( @'.' @Ident )*"`
	Args []*typeArg `parser:"( '<' ( @@ ( ',' @@ )* )? '>' )?"`
	Dims []string   `parser:"( @'[' ']' )*"`
}

type typeArg struct {
	Wildcard  bool     `parser:"( @'?'"`
	BoundKind string   `parser:"  ( @( 'extends' | 'super' )"`
	Bound     *typeRef `parser:"    @@ )? )"`
	Type      *typeRef `parser:"| @@"`
}

type member struct {
	Pos         lexer.Position
	Prefix      []*prefix    `parser:"@@*"`
	Nested      *classDecl   `parser:"( @@"`
	Opaque      *opaqueDecl  `parser:"| @@"`
	Initializer *block       `parser:"| @@"`
	Constructor *constructor `parser:"| @@"`
	Typed       *typedMember `parser:"| @@ )"`
}

type constructor struct {
	Name   string     `parser:"@Ident '('"`
	Params []*param   `parser:"( @@ ( ',' @@ )* )? ')'"`
	Throws []*typeRef `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Body   *block     `parser:"@@"`
}

type typedMember struct {
	TypeParams []*typeParam `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Type       *typeRef     `parser:"@@"`
	Name       string       `parser:"@Ident"`
	Method     *methodRest  `parser:"( @@"`
	Field      *fieldRest   `parser:"| @@ )"`
}

type methodRest struct {
	Params   []*param   `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Dims     []string   `parser:"( @'[' ']' )*"`
	Throws   []*typeRef `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Body     *block     `parser:"( @@"`
	Abstract bool       `parser:"| @';' )"`
}

type fieldRest struct {
	Dims []string      `parser:"( @'[' ']' )*"`
	Init *initializer  `parser:"( '=' @@ )?"`
	More []*declarator `parser:"( ',' @@ )* ';'"`
}

type declarator struct {
	Name string       `parser:"@Ident"`
	Dims []string     `parser:"( @'[' ']' )*"`
	Init *initializer `parser:"( '=' @@ )?"`
}

type param struct {
	Prefix   []*prefix `parser:"@@*"`
	Type     *typeRef  `parser:"@@"`
	Variadic bool      `parser:"@Ellipsis?"`
	Name     string    `parser:"@Ident"`
	Dims     []string  `parser:"( @'[' ']' )*"`
}

type initializer struct {
	Parts []*initPart `parser:"@@+"`
}

type initPart struct {
	Block *block  `parser:"  @@"`
	Group *parens `parser:"| @@"`
	Token string  `parser:"| @~( ';' | '{' | '}' | '(' | ')' )"`
}

type block struct {
	Parts []*blockPart `parser:"'{' @@* '}'"`
}

type blockPart struct {
	Block *block `parser:"  @@"`
	Token string `parser:"| @~( '{' | '}' )"`
}

type parens struct {
	Parts []*parenPart `parser:"'(' @@* ')'"`
}

type parenPart struct {
	Group *parens `parser:"  @@"`
	Block *block  `parser:"| @@"`
	Token string  `parser:"| @~( '(' | ')' | '{' | '}' )"`
}
