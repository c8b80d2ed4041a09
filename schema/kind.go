package schema

// Kind identifies a schema node variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindBigInt
	KindBoolean
	KindNull
	KindLiteral
	KindObject
	KindArray
	KindUnion
	KindDiscriminatedUnion
	KindLazy
	KindNullable
	KindOptional
	KindDefault
	// Recognized but not representable in strict output.
	KindAny
	KindNever
	KindIntersection
	KindTuple
	KindRecord
)

var kindNames = [...]string{
	KindUnknown:            "unknown",
	KindString:             "string",
	KindNumber:             "number",
	KindBigInt:             "bigint",
	KindBoolean:            "boolean",
	KindNull:               "null",
	KindLiteral:            "literal",
	KindObject:             "object",
	KindArray:              "array",
	KindUnion:              "union",
	KindDiscriminatedUnion: "discriminatedUnion",
	KindLazy:               "lazy",
	KindNullable:           "nullable",
	KindOptional:           "optional",
	KindDefault:            "default",
	KindAny:                "any",
	KindNever:              "never",
	KindIntersection:       "intersection",
	KindTuple:              "tuple",
	KindRecord:             "record",
}

// String returns the discriminator name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
