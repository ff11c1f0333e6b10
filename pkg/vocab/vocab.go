// Package vocab classifies identifier-shaped words against the closed
// vocabularies of the Godot shading language: qualifiers, shader types,
// render modes, hints, builtin types, builtin variables and builtin
// functions.
//
// Classification depends only on the spelling of a word. What a class means
// at a given grammar position is decided by InTypePosition and
// InIdentPosition, which deliberately disagree about builtin variables and
// builtin functions.
package vocab

import (
	"sort"
)

// Class is the vocabulary an identifier-shaped word belongs to.
type Class uint8

const (
	PlainIdentifier Class = iota
	PrecisionQualifier
	InterpolationQualifier
	ShaderType
	RenderMode
	HintName
	ParamQualifier
	BuiltinType
	BuiltinVariable
	BuiltinFunction

	// Keyword and Boolean are not vocabularies a declaration can name; the
	// parser uses them to dispatch statements and literals.
	Keyword
	Boolean
)

var classNames = [...]string{
	PlainIdentifier:        "identifier",
	PrecisionQualifier:     "precision_qualifier",
	InterpolationQualifier: "interpolation_qualifier",
	ShaderType:             "shader_type",
	RenderMode:             "render_mode",
	HintName:               "hint_name",
	ParamQualifier:         "param_qualifier",
	BuiltinType:            "builtin_type",
	BuiltinVariable:        "builtin_variable",
	BuiltinFunction:        "builtin_function",
	Keyword:                "keyword",
	Boolean:                "boolean",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

var vocabularies = map[Class][]string{
	PrecisionQualifier:     precisionQualifiers,
	InterpolationQualifier: interpolationQualifiers,
	ShaderType:             shaderTypes,
	RenderMode:             renderModes,
	HintName:               hintNames,
	ParamQualifier:         paramQualifiers,
	BuiltinType:            builtinTypes,
	BuiltinVariable:        builtinVariables,
	BuiltinFunction:        builtinFunctions,
	Keyword:                keywords,
	Boolean:                booleans,
}

// index maps every closed-vocabulary word to its class. It is built once
// and only read afterwards, so concurrent lookups are safe.
var index = buildIndex()

func buildIndex() map[string]Class {
	idx := make(map[string]Class)
	for class, words := range vocabularies {
		for _, w := range words {
			idx[w] = class
		}
	}
	return idx
}

// Classify returns the vocabulary word belongs to, or PlainIdentifier.
func Classify(word string) Class {
	if c, ok := index[word]; ok {
		return c
	}
	return PlainIdentifier
}

// Is reports whether word belongs to class c.
func Is(word string, c Class) bool {
	return Classify(word) == c
}

// Words returns a sorted copy of the words of class c. PlainIdentifier has
// no word list and returns nil.
func Words(c Class) []string {
	words := vocabularies[c]
	if words == nil {
		return nil
	}
	out := make([]string, len(words))
	copy(out, words)
	sort.Strings(out)
	return out
}

// TypeRole is how a word is treated where the grammar expects a type.
type TypeRole uint8

const (
	TypeBuiltin TypeRole = iota // builtin_type
	TypeIdent                   // ident_type, e.g. a struct name
	TypeInvalid                 // invalid_type
)

// InTypePosition decides the role of a word of class c used as a type.
// Every closed-vocabulary word other than a builtin type is invalid there,
// builtin variables and functions included.
func InTypePosition(c Class) TypeRole {
	switch c {
	case BuiltinType:
		return TypeBuiltin
	case PlainIdentifier:
		return TypeIdent
	default:
		return TypeInvalid
	}
}

// InIdentPosition reports whether a word of class c is a valid identifier.
// Builtin variables and builtin functions are referenced by name, so they
// are accepted; every other closed-vocabulary word is not.
func InIdentPosition(c Class) bool {
	switch c {
	case PlainIdentifier, BuiltinVariable, BuiltinFunction:
		return true
	default:
		return false
	}
}
