package querylanguage

import (
	"database/sql/driver"
	"time"
)

// Fielder is the interface for predicate constructors that bind to a
// field by name. Typed constructors (e.g. StringEQ, IntGT) build the
// predicate shape first; Field substitutes the field reference.
type Fielder interface {
	// Field returns the predicate bound to the given field name.
	Field(name string) P
}

func eqf(v any) func(string) P  { return func(name string) P { return FieldEQ(name, v) } }
func neqf(v any) func(string) P { return func(name string) P { return FieldNEQ(name, v) } }
func gtf(v any) func(string) P  { return func(name string) P { return FieldGT(name, v) } }
func gtef(v any) func(string) P { return func(name string) P { return FieldGTE(name, v) } }
func ltf(v any) func(string) P  { return func(name string) P { return FieldLT(name, v) } }
func ltef(v any) func(string) P { return func(name string) P { return FieldLTE(name, v) } }
func nilf() func(string) P      { return FieldNil }
func notNilf() func(string) P   { return FieldNotNil }

func andf[T Fielder](x, y T, z []T) func(string) P {
	return func(name string) P {
		zs := make([]P, len(z))
		for i := range z {
			zs[i] = z[i].Field(name)
		}
		return And(x.Field(name), y.Field(name), zs...)
	}
}

func orf[T Fielder](x, y T, z []T) func(string) P {
	return func(name string) P {
		zs := make([]P, len(z))
		for i := range z {
			zs[i] = z[i].Field(name)
		}
		return Or(x.Field(name), y.Field(name), zs...)
	}
}

func notf(x Fielder) func(string) P {
	return func(name string) P { return Not(x.Field(name)) }
}

type (
	// BoolP is a predicate constructor for bool fields.
	BoolP interface {
		Fielder
		boolP()
	}
	boolFn func(string) P
)

func (f boolFn) Field(name string) P { return f(name) }
func (boolFn) boolP()                {}

// BoolEQ returns a predicate to check if a bool field is equal to the given value.
func BoolEQ(v bool) BoolP { return boolFn(eqf(v)) }

// BoolNEQ returns a predicate to check if a bool field is not equal to the given value.
func BoolNEQ(v bool) BoolP { return boolFn(neqf(v)) }

// BoolNil returns a predicate to check if a bool field is nil.
func BoolNil() BoolP { return boolFn(nilf()) }

// BoolNotNil returns a predicate to check if a bool field is not nil.
func BoolNotNil() BoolP { return boolFn(notNilf()) }

// BoolAnd returns the conjunction of the given bool predicates.
func BoolAnd(x, y BoolP, z ...BoolP) BoolP { return boolFn(andf(x, y, z)) }

// BoolOr returns the disjunction of the given bool predicates.
func BoolOr(x, y BoolP, z ...BoolP) BoolP { return boolFn(orf(x, y, z)) }

// BoolNot returns the negation of the given bool predicate.
func BoolNot(x BoolP) BoolP { return boolFn(notf(x)) }

type (
	// BytesP is a predicate constructor for []byte fields.
	BytesP interface {
		Fielder
		bytesP()
	}
	bytesFn func(string) P
)

func (f bytesFn) Field(name string) P { return f(name) }
func (bytesFn) bytesP()               {}

// BytesEQ returns a predicate to check if a bytes field is equal to the given value.
func BytesEQ(v []byte) BytesP { return bytesFn(eqf(v)) }

// BytesNEQ returns a predicate to check if a bytes field is not equal to the given value.
func BytesNEQ(v []byte) BytesP { return bytesFn(neqf(v)) }

// BytesNil returns a predicate to check if a bytes field is nil.
func BytesNil() BytesP { return bytesFn(nilf()) }

// BytesNotNil returns a predicate to check if a bytes field is not nil.
func BytesNotNil() BytesP { return bytesFn(notNilf()) }

// BytesAnd returns the conjunction of the given bytes predicates.
func BytesAnd(x, y BytesP, z ...BytesP) BytesP { return bytesFn(andf(x, y, z)) }

// BytesOr returns the disjunction of the given bytes predicates.
func BytesOr(x, y BytesP, z ...BytesP) BytesP { return bytesFn(orf(x, y, z)) }

// BytesNot returns the negation of the given bytes predicate.
func BytesNot(x BytesP) BytesP { return bytesFn(notf(x)) }

type (
	// TimeP is a predicate constructor for time fields.
	TimeP interface {
		Fielder
		timeP()
	}
	timeFn func(string) P
)

func (f timeFn) Field(name string) P { return f(name) }
func (timeFn) timeP()                {}

// TimeEQ returns a predicate to check if a time field is equal to the given value.
func TimeEQ(v time.Time) TimeP { return timeFn(eqf(v)) }

// TimeNEQ returns a predicate to check if a time field is not equal to the given value.
func TimeNEQ(v time.Time) TimeP { return timeFn(neqf(v)) }

// TimeGT returns a predicate to check if a time field is strictly after the given value.
func TimeGT(v time.Time) TimeP { return timeFn(gtf(v)) }

// TimeGTE returns a predicate to check if a time field is after or equal to the given value.
func TimeGTE(v time.Time) TimeP { return timeFn(gtef(v)) }

// TimeLT returns a predicate to check if a time field is strictly before the given value.
func TimeLT(v time.Time) TimeP { return timeFn(ltf(v)) }

// TimeLTE returns a predicate to check if a time field is before or equal to the given value.
func TimeLTE(v time.Time) TimeP { return timeFn(ltef(v)) }

// TimeNil returns a predicate to check if a time field is nil.
func TimeNil() TimeP { return timeFn(nilf()) }

// TimeNotNil returns a predicate to check if a time field is not nil.
func TimeNotNil() TimeP { return timeFn(notNilf()) }

// TimeAnd returns the conjunction of the given time predicates.
func TimeAnd(x, y TimeP, z ...TimeP) TimeP { return timeFn(andf(x, y, z)) }

// TimeOr returns the disjunction of the given time predicates.
func TimeOr(x, y TimeP, z ...TimeP) TimeP { return timeFn(orf(x, y, z)) }

// TimeNot returns the negation of the given time predicate.
func TimeNot(x TimeP) TimeP { return timeFn(notf(x)) }

type (
	// UintP is a predicate constructor for uint fields.
	UintP interface {
		Fielder
		uintP()
	}
	uintFn func(string) P
)

func (f uintFn) Field(name string) P { return f(name) }
func (uintFn) uintP()                {}

// UintEQ returns a predicate to check if a uint field is equal to the given value.
func UintEQ(v uint) UintP { return uintFn(eqf(v)) }

// UintNEQ returns a predicate to check if a uint field is not equal to the given value.
func UintNEQ(v uint) UintP { return uintFn(neqf(v)) }

// UintGT returns a predicate to check if a uint field is greater than the given value.
func UintGT(v uint) UintP { return uintFn(gtf(v)) }

// UintGTE returns a predicate to check if a uint field is greater than or equal to the given value.
func UintGTE(v uint) UintP { return uintFn(gtef(v)) }

// UintLT returns a predicate to check if a uint field is less than the given value.
func UintLT(v uint) UintP { return uintFn(ltf(v)) }

// UintLTE returns a predicate to check if a uint field is less than or equal to the given value.
func UintLTE(v uint) UintP { return uintFn(ltef(v)) }

// UintNil returns a predicate to check if a uint field is nil.
func UintNil() UintP { return uintFn(nilf()) }

// UintNotNil returns a predicate to check if a uint field is not nil.
func UintNotNil() UintP { return uintFn(notNilf()) }

// UintAnd returns the conjunction of the given uint predicates.
func UintAnd(x, y UintP, z ...UintP) UintP { return uintFn(andf(x, y, z)) }

// UintOr returns the disjunction of the given uint predicates.
func UintOr(x, y UintP, z ...UintP) UintP { return uintFn(orf(x, y, z)) }

// UintNot returns the negation of the given uint predicate.
func UintNot(x UintP) UintP { return uintFn(notf(x)) }

type (
	// Uint8P is a predicate constructor for uint8 fields.
	Uint8P interface {
		Fielder
		uint8P()
	}
	uint8Fn func(string) P
)

func (f uint8Fn) Field(name string) P { return f(name) }
func (uint8Fn) uint8P()               {}

// Uint8EQ returns a predicate to check if a uint8 field is equal to the given value.
func Uint8EQ(v uint8) Uint8P { return uint8Fn(eqf(v)) }

// Uint8NEQ returns a predicate to check if a uint8 field is not equal to the given value.
func Uint8NEQ(v uint8) Uint8P { return uint8Fn(neqf(v)) }

// Uint8GT returns a predicate to check if a uint8 field is greater than the given value.
func Uint8GT(v uint8) Uint8P { return uint8Fn(gtf(v)) }

// Uint8GTE returns a predicate to check if a uint8 field is greater than or equal to the given value.
func Uint8GTE(v uint8) Uint8P { return uint8Fn(gtef(v)) }

// Uint8LT returns a predicate to check if a uint8 field is less than the given value.
func Uint8LT(v uint8) Uint8P { return uint8Fn(ltf(v)) }

// Uint8LTE returns a predicate to check if a uint8 field is less than or equal to the given value.
func Uint8LTE(v uint8) Uint8P { return uint8Fn(ltef(v)) }

// Uint8Nil returns a predicate to check if a uint8 field is nil.
func Uint8Nil() Uint8P { return uint8Fn(nilf()) }

// Uint8NotNil returns a predicate to check if a uint8 field is not nil.
func Uint8NotNil() Uint8P { return uint8Fn(notNilf()) }

// Uint8And returns the conjunction of the given uint8 predicates.
func Uint8And(x, y Uint8P, z ...Uint8P) Uint8P { return uint8Fn(andf(x, y, z)) }

// Uint8Or returns the disjunction of the given uint8 predicates.
func Uint8Or(x, y Uint8P, z ...Uint8P) Uint8P { return uint8Fn(orf(x, y, z)) }

// Uint8Not returns the negation of the given uint8 predicate.
func Uint8Not(x Uint8P) Uint8P { return uint8Fn(notf(x)) }

type (
	// Uint16P is a predicate constructor for uint16 fields.
	Uint16P interface {
		Fielder
		uint16P()
	}
	uint16Fn func(string) P
)

func (f uint16Fn) Field(name string) P { return f(name) }
func (uint16Fn) uint16P()              {}

// Uint16EQ returns a predicate to check if a uint16 field is equal to the given value.
func Uint16EQ(v uint16) Uint16P { return uint16Fn(eqf(v)) }

// Uint16NEQ returns a predicate to check if a uint16 field is not equal to the given value.
func Uint16NEQ(v uint16) Uint16P { return uint16Fn(neqf(v)) }

// Uint16GT returns a predicate to check if a uint16 field is greater than the given value.
func Uint16GT(v uint16) Uint16P { return uint16Fn(gtf(v)) }

// Uint16GTE returns a predicate to check if a uint16 field is greater than or equal to the given value.
func Uint16GTE(v uint16) Uint16P { return uint16Fn(gtef(v)) }

// Uint16LT returns a predicate to check if a uint16 field is less than the given value.
func Uint16LT(v uint16) Uint16P { return uint16Fn(ltf(v)) }

// Uint16LTE returns a predicate to check if a uint16 field is less than or equal to the given value.
func Uint16LTE(v uint16) Uint16P { return uint16Fn(ltef(v)) }

// Uint16Nil returns a predicate to check if a uint16 field is nil.
func Uint16Nil() Uint16P { return uint16Fn(nilf()) }

// Uint16NotNil returns a predicate to check if a uint16 field is not nil.
func Uint16NotNil() Uint16P { return uint16Fn(notNilf()) }

// Uint16And returns the conjunction of the given uint16 predicates.
func Uint16And(x, y Uint16P, z ...Uint16P) Uint16P { return uint16Fn(andf(x, y, z)) }

// Uint16Or returns the disjunction of the given uint16 predicates.
func Uint16Or(x, y Uint16P, z ...Uint16P) Uint16P { return uint16Fn(orf(x, y, z)) }

// Uint16Not returns the negation of the given uint16 predicate.
func Uint16Not(x Uint16P) Uint16P { return uint16Fn(notf(x)) }

type (
	// Uint32P is a predicate constructor for uint32 fields.
	Uint32P interface {
		Fielder
		uint32P()
	}
	uint32Fn func(string) P
)

func (f uint32Fn) Field(name string) P { return f(name) }
func (uint32Fn) uint32P()              {}

// Uint32EQ returns a predicate to check if a uint32 field is equal to the given value.
func Uint32EQ(v uint32) Uint32P { return uint32Fn(eqf(v)) }

// Uint32NEQ returns a predicate to check if a uint32 field is not equal to the given value.
func Uint32NEQ(v uint32) Uint32P { return uint32Fn(neqf(v)) }

// Uint32GT returns a predicate to check if a uint32 field is greater than the given value.
func Uint32GT(v uint32) Uint32P { return uint32Fn(gtf(v)) }

// Uint32GTE returns a predicate to check if a uint32 field is greater than or equal to the given value.
func Uint32GTE(v uint32) Uint32P { return uint32Fn(gtef(v)) }

// Uint32LT returns a predicate to check if a uint32 field is less than the given value.
func Uint32LT(v uint32) Uint32P { return uint32Fn(ltf(v)) }

// Uint32LTE returns a predicate to check if a uint32 field is less than or equal to the given value.
func Uint32LTE(v uint32) Uint32P { return uint32Fn(ltef(v)) }

// Uint32Nil returns a predicate to check if a uint32 field is nil.
func Uint32Nil() Uint32P { return uint32Fn(nilf()) }

// Uint32NotNil returns a predicate to check if a uint32 field is not nil.
func Uint32NotNil() Uint32P { return uint32Fn(notNilf()) }

// Uint32And returns the conjunction of the given uint32 predicates.
func Uint32And(x, y Uint32P, z ...Uint32P) Uint32P { return uint32Fn(andf(x, y, z)) }

// Uint32Or returns the disjunction of the given uint32 predicates.
func Uint32Or(x, y Uint32P, z ...Uint32P) Uint32P { return uint32Fn(orf(x, y, z)) }

// Uint32Not returns the negation of the given uint32 predicate.
func Uint32Not(x Uint32P) Uint32P { return uint32Fn(notf(x)) }

type (
	// Uint64P is a predicate constructor for uint64 fields.
	Uint64P interface {
		Fielder
		uint64P()
	}
	uint64Fn func(string) P
)

func (f uint64Fn) Field(name string) P { return f(name) }
func (uint64Fn) uint64P()              {}

// Uint64EQ returns a predicate to check if a uint64 field is equal to the given value.
func Uint64EQ(v uint64) Uint64P { return uint64Fn(eqf(v)) }

// Uint64NEQ returns a predicate to check if a uint64 field is not equal to the given value.
func Uint64NEQ(v uint64) Uint64P { return uint64Fn(neqf(v)) }

// Uint64GT returns a predicate to check if a uint64 field is greater than the given value.
func Uint64GT(v uint64) Uint64P { return uint64Fn(gtf(v)) }

// Uint64GTE returns a predicate to check if a uint64 field is greater than or equal to the given value.
func Uint64GTE(v uint64) Uint64P { return uint64Fn(gtef(v)) }

// Uint64LT returns a predicate to check if a uint64 field is less than the given value.
func Uint64LT(v uint64) Uint64P { return uint64Fn(ltf(v)) }

// Uint64LTE returns a predicate to check if a uint64 field is less than or equal to the given value.
func Uint64LTE(v uint64) Uint64P { return uint64Fn(ltef(v)) }

// Uint64Nil returns a predicate to check if a uint64 field is nil.
func Uint64Nil() Uint64P { return uint64Fn(nilf()) }

// Uint64NotNil returns a predicate to check if a uint64 field is not nil.
func Uint64NotNil() Uint64P { return uint64Fn(notNilf()) }

// Uint64And returns the conjunction of the given uint64 predicates.
func Uint64And(x, y Uint64P, z ...Uint64P) Uint64P { return uint64Fn(andf(x, y, z)) }

// Uint64Or returns the disjunction of the given uint64 predicates.
func Uint64Or(x, y Uint64P, z ...Uint64P) Uint64P { return uint64Fn(orf(x, y, z)) }

// Uint64Not returns the negation of the given uint64 predicate.
func Uint64Not(x Uint64P) Uint64P { return uint64Fn(notf(x)) }

type (
	// IntP is a predicate constructor for int fields.
	IntP interface {
		Fielder
		intP()
	}
	intFn func(string) P
)

func (f intFn) Field(name string) P { return f(name) }
func (intFn) intP()                 {}

// IntEQ returns a predicate to check if an int field is equal to the given value.
func IntEQ(v int) IntP { return intFn(eqf(v)) }

// IntNEQ returns a predicate to check if an int field is not equal to the given value.
func IntNEQ(v int) IntP { return intFn(neqf(v)) }

// IntGT returns a predicate to check if an int field is greater than the given value.
func IntGT(v int) IntP { return intFn(gtf(v)) }

// IntGTE returns a predicate to check if an int field is greater than or equal to the given value.
func IntGTE(v int) IntP { return intFn(gtef(v)) }

// IntLT returns a predicate to check if an int field is less than the given value.
func IntLT(v int) IntP { return intFn(ltf(v)) }

// IntLTE returns a predicate to check if an int field is less than or equal to the given value.
func IntLTE(v int) IntP { return intFn(ltef(v)) }

// IntNil returns a predicate to check if an int field is nil.
func IntNil() IntP { return intFn(nilf()) }

// IntNotNil returns a predicate to check if an int field is not nil.
func IntNotNil() IntP { return intFn(notNilf()) }

// IntAnd returns the conjunction of the given int predicates.
func IntAnd(x, y IntP, z ...IntP) IntP { return intFn(andf(x, y, z)) }

// IntOr returns the disjunction of the given int predicates.
func IntOr(x, y IntP, z ...IntP) IntP { return intFn(orf(x, y, z)) }

// IntNot returns the negation of the given int predicate.
func IntNot(x IntP) IntP { return intFn(notf(x)) }

type (
	// Int8P is a predicate constructor for int8 fields.
	Int8P interface {
		Fielder
		int8P()
	}
	int8Fn func(string) P
)

func (f int8Fn) Field(name string) P { return f(name) }
func (int8Fn) int8P()                {}

// Int8EQ returns a predicate to check if an int8 field is equal to the given value.
func Int8EQ(v int8) Int8P { return int8Fn(eqf(v)) }

// Int8NEQ returns a predicate to check if an int8 field is not equal to the given value.
func Int8NEQ(v int8) Int8P { return int8Fn(neqf(v)) }

// Int8GT returns a predicate to check if an int8 field is greater than the given value.
func Int8GT(v int8) Int8P { return int8Fn(gtf(v)) }

// Int8GTE returns a predicate to check if an int8 field is greater than or equal to the given value.
func Int8GTE(v int8) Int8P { return int8Fn(gtef(v)) }

// Int8LT returns a predicate to check if an int8 field is less than the given value.
func Int8LT(v int8) Int8P { return int8Fn(ltf(v)) }

// Int8LTE returns a predicate to check if an int8 field is less than or equal to the given value.
func Int8LTE(v int8) Int8P { return int8Fn(ltef(v)) }

// Int8Nil returns a predicate to check if an int8 field is nil.
func Int8Nil() Int8P { return int8Fn(nilf()) }

// Int8NotNil returns a predicate to check if an int8 field is not nil.
func Int8NotNil() Int8P { return int8Fn(notNilf()) }

// Int8And returns the conjunction of the given int8 predicates.
func Int8And(x, y Int8P, z ...Int8P) Int8P { return int8Fn(andf(x, y, z)) }

// Int8Or returns the disjunction of the given int8 predicates.
func Int8Or(x, y Int8P, z ...Int8P) Int8P { return int8Fn(orf(x, y, z)) }

// Int8Not returns the negation of the given int8 predicate.
func Int8Not(x Int8P) Int8P { return int8Fn(notf(x)) }

type (
	// Int16P is a predicate constructor for int16 fields.
	Int16P interface {
		Fielder
		int16P()
	}
	int16Fn func(string) P
)

func (f int16Fn) Field(name string) P { return f(name) }
func (int16Fn) int16P()               {}

// Int16EQ returns a predicate to check if an int16 field is equal to the given value.
func Int16EQ(v int16) Int16P { return int16Fn(eqf(v)) }

// Int16NEQ returns a predicate to check if an int16 field is not equal to the given value.
func Int16NEQ(v int16) Int16P { return int16Fn(neqf(v)) }

// Int16GT returns a predicate to check if an int16 field is greater than the given value.
func Int16GT(v int16) Int16P { return int16Fn(gtf(v)) }

// Int16GTE returns a predicate to check if an int16 field is greater than or equal to the given value.
func Int16GTE(v int16) Int16P { return int16Fn(gtef(v)) }

// Int16LT returns a predicate to check if an int16 field is less than the given value.
func Int16LT(v int16) Int16P { return int16Fn(ltf(v)) }

// Int16LTE returns a predicate to check if an int16 field is less than or equal to the given value.
func Int16LTE(v int16) Int16P { return int16Fn(ltef(v)) }

// Int16Nil returns a predicate to check if an int16 field is nil.
func Int16Nil() Int16P { return int16Fn(nilf()) }

// Int16NotNil returns a predicate to check if an int16 field is not nil.
func Int16NotNil() Int16P { return int16Fn(notNilf()) }

// Int16And returns the conjunction of the given int16 predicates.
func Int16And(x, y Int16P, z ...Int16P) Int16P { return int16Fn(andf(x, y, z)) }

// Int16Or returns the disjunction of the given int16 predicates.
func Int16Or(x, y Int16P, z ...Int16P) Int16P { return int16Fn(orf(x, y, z)) }

// Int16Not returns the negation of the given int16 predicate.
func Int16Not(x Int16P) Int16P { return int16Fn(notf(x)) }

type (
	// Int32P is a predicate constructor for int32 fields.
	Int32P interface {
		Fielder
		int32P()
	}
	int32Fn func(string) P
)

func (f int32Fn) Field(name string) P { return f(name) }
func (int32Fn) int32P()               {}

// Int32EQ returns a predicate to check if an int32 field is equal to the given value.
func Int32EQ(v int32) Int32P { return int32Fn(eqf(v)) }

// Int32NEQ returns a predicate to check if an int32 field is not equal to the given value.
func Int32NEQ(v int32) Int32P { return int32Fn(neqf(v)) }

// Int32GT returns a predicate to check if an int32 field is greater than the given value.
func Int32GT(v int32) Int32P { return int32Fn(gtf(v)) }

// Int32GTE returns a predicate to check if an int32 field is greater than or equal to the given value.
func Int32GTE(v int32) Int32P { return int32Fn(gtef(v)) }

// Int32LT returns a predicate to check if an int32 field is less than the given value.
func Int32LT(v int32) Int32P { return int32Fn(ltf(v)) }

// Int32LTE returns a predicate to check if an int32 field is less than or equal to the given value.
func Int32LTE(v int32) Int32P { return int32Fn(ltef(v)) }

// Int32Nil returns a predicate to check if an int32 field is nil.
func Int32Nil() Int32P { return int32Fn(nilf()) }

// Int32NotNil returns a predicate to check if an int32 field is not nil.
func Int32NotNil() Int32P { return int32Fn(notNilf()) }

// Int32And returns the conjunction of the given int32 predicates.
func Int32And(x, y Int32P, z ...Int32P) Int32P { return int32Fn(andf(x, y, z)) }

// Int32Or returns the disjunction of the given int32 predicates.
func Int32Or(x, y Int32P, z ...Int32P) Int32P { return int32Fn(orf(x, y, z)) }

// Int32Not returns the negation of the given int32 predicate.
func Int32Not(x Int32P) Int32P { return int32Fn(notf(x)) }

type (
	// Int64P is a predicate constructor for int64 fields.
	Int64P interface {
		Fielder
		int64P()
	}
	int64Fn func(string) P
)

func (f int64Fn) Field(name string) P { return f(name) }
func (int64Fn) int64P()               {}

// Int64EQ returns a predicate to check if an int64 field is equal to the given value.
func Int64EQ(v int64) Int64P { return int64Fn(eqf(v)) }

// Int64NEQ returns a predicate to check if an int64 field is not equal to the given value.
func Int64NEQ(v int64) Int64P { return int64Fn(neqf(v)) }

// Int64GT returns a predicate to check if an int64 field is greater than the given value.
func Int64GT(v int64) Int64P { return int64Fn(gtf(v)) }

// Int64GTE returns a predicate to check if an int64 field is greater than or equal to the given value.
func Int64GTE(v int64) Int64P { return int64Fn(gtef(v)) }

// Int64LT returns a predicate to check if an int64 field is less than the given value.
func Int64LT(v int64) Int64P { return int64Fn(ltf(v)) }

// Int64LTE returns a predicate to check if an int64 field is less than or equal to the given value.
func Int64LTE(v int64) Int64P { return int64Fn(ltef(v)) }

// Int64Nil returns a predicate to check if an int64 field is nil.
func Int64Nil() Int64P { return int64Fn(nilf()) }

// Int64NotNil returns a predicate to check if an int64 field is not nil.
func Int64NotNil() Int64P { return int64Fn(notNilf()) }

// Int64And returns the conjunction of the given int64 predicates.
func Int64And(x, y Int64P, z ...Int64P) Int64P { return int64Fn(andf(x, y, z)) }

// Int64Or returns the disjunction of the given int64 predicates.
func Int64Or(x, y Int64P, z ...Int64P) Int64P { return int64Fn(orf(x, y, z)) }

// Int64Not returns the negation of the given int64 predicate.
func Int64Not(x Int64P) Int64P { return int64Fn(notf(x)) }

type (
	// Float32P is a predicate constructor for float32 fields.
	Float32P interface {
		Fielder
		float32P()
	}
	float32Fn func(string) P
)

func (f float32Fn) Field(name string) P { return f(name) }
func (float32Fn) float32P()             {}

// Float32EQ returns a predicate to check if a float32 field is equal to the given value.
func Float32EQ(v float32) Float32P { return float32Fn(eqf(v)) }

// Float32NEQ returns a predicate to check if a float32 field is not equal to the given value.
func Float32NEQ(v float32) Float32P { return float32Fn(neqf(v)) }

// Float32GT returns a predicate to check if a float32 field is greater than the given value.
func Float32GT(v float32) Float32P { return float32Fn(gtf(v)) }

// Float32GTE returns a predicate to check if a float32 field is greater than or equal to the given value.
func Float32GTE(v float32) Float32P { return float32Fn(gtef(v)) }

// Float32LT returns a predicate to check if a float32 field is less than the given value.
func Float32LT(v float32) Float32P { return float32Fn(ltf(v)) }

// Float32LTE returns a predicate to check if a float32 field is less than or equal to the given value.
func Float32LTE(v float32) Float32P { return float32Fn(ltef(v)) }

// Float32Nil returns a predicate to check if a float32 field is nil.
func Float32Nil() Float32P { return float32Fn(nilf()) }

// Float32NotNil returns a predicate to check if a float32 field is not nil.
func Float32NotNil() Float32P { return float32Fn(notNilf()) }

// Float32And returns the conjunction of the given float32 predicates.
func Float32And(x, y Float32P, z ...Float32P) Float32P { return float32Fn(andf(x, y, z)) }

// Float32Or returns the disjunction of the given float32 predicates.
func Float32Or(x, y Float32P, z ...Float32P) Float32P { return float32Fn(orf(x, y, z)) }

// Float32Not returns the negation of the given float32 predicate.
func Float32Not(x Float32P) Float32P { return float32Fn(notf(x)) }

type (
	// Float64P is a predicate constructor for float64 fields.
	Float64P interface {
		Fielder
		float64P()
	}
	float64Fn func(string) P
)

func (f float64Fn) Field(name string) P { return f(name) }
func (float64Fn) float64P()             {}

// Float64EQ returns a predicate to check if a float64 field is equal to the given value.
func Float64EQ(v float64) Float64P { return float64Fn(eqf(v)) }

// Float64NEQ returns a predicate to check if a float64 field is not equal to the given value.
func Float64NEQ(v float64) Float64P { return float64Fn(neqf(v)) }

// Float64GT returns a predicate to check if a float64 field is greater than the given value.
func Float64GT(v float64) Float64P { return float64Fn(gtf(v)) }

// Float64GTE returns a predicate to check if a float64 field is greater than or equal to the given value.
func Float64GTE(v float64) Float64P { return float64Fn(gtef(v)) }

// Float64LT returns a predicate to check if a float64 field is less than the given value.
func Float64LT(v float64) Float64P { return float64Fn(ltf(v)) }

// Float64LTE returns a predicate to check if a float64 field is less than or equal to the given value.
func Float64LTE(v float64) Float64P { return float64Fn(ltef(v)) }

// Float64Nil returns a predicate to check if a float64 field is nil.
func Float64Nil() Float64P { return float64Fn(nilf()) }

// Float64NotNil returns a predicate to check if a float64 field is not nil.
func Float64NotNil() Float64P { return float64Fn(notNilf()) }

// Float64And returns the conjunction of the given float64 predicates.
func Float64And(x, y Float64P, z ...Float64P) Float64P { return float64Fn(andf(x, y, z)) }

// Float64Or returns the disjunction of the given float64 predicates.
func Float64Or(x, y Float64P, z ...Float64P) Float64P { return float64Fn(orf(x, y, z)) }

// Float64Not returns the negation of the given float64 predicate.
func Float64Not(x Float64P) Float64P { return float64Fn(notf(x)) }

type (
	// StringP is a predicate constructor for string fields.
	StringP interface {
		Fielder
		stringP()
	}
	stringFn func(string) P
)

func (f stringFn) Field(name string) P { return f(name) }
func (stringFn) stringP()              {}

// StringEQ returns a predicate to check if a string field is equal to the given value.
func StringEQ(v string) StringP { return stringFn(eqf(v)) }

// StringNEQ returns a predicate to check if a string field is not equal to the given value.
func StringNEQ(v string) StringP { return stringFn(neqf(v)) }

// StringGT returns a predicate to check if a string field is greater than the given value.
func StringGT(v string) StringP { return stringFn(gtf(v)) }

// StringGTE returns a predicate to check if a string field is greater than or equal to the given value.
func StringGTE(v string) StringP { return stringFn(gtef(v)) }

// StringLT returns a predicate to check if a string field is less than the given value.
func StringLT(v string) StringP { return stringFn(ltf(v)) }

// StringLTE returns a predicate to check if a string field is less than or equal to the given value.
func StringLTE(v string) StringP { return stringFn(ltef(v)) }

// StringContains returns a predicate to check if a string field contains the given substring.
func StringContains(v string) StringP {
	return stringFn(func(name string) P { return FieldContains(name, v) })
}

// StringContainsFold returns a predicate to check if a string field contains the given substring under case folding.
func StringContainsFold(v string) StringP {
	return stringFn(func(name string) P { return FieldContainsFold(name, v) })
}

// StringEqualFold returns a predicate to check if a string field equals the given value under case folding.
func StringEqualFold(v string) StringP {
	return stringFn(func(name string) P { return FieldEqualFold(name, v) })
}

// StringHasPrefix returns a predicate to check if a string field starts with the given prefix.
func StringHasPrefix(v string) StringP {
	return stringFn(func(name string) P { return FieldHasPrefix(name, v) })
}

// StringHasSuffix returns a predicate to check if a string field ends with the given suffix.
func StringHasSuffix(v string) StringP {
	return stringFn(func(name string) P { return FieldHasSuffix(name, v) })
}

// StringNil returns a predicate to check if a string field is nil.
func StringNil() StringP { return stringFn(nilf()) }

// StringNotNil returns a predicate to check if a string field is not nil.
func StringNotNil() StringP { return stringFn(notNilf()) }

// StringAnd returns the conjunction of the given string predicates.
func StringAnd(x, y StringP, z ...StringP) StringP { return stringFn(andf(x, y, z)) }

// StringOr returns the disjunction of the given string predicates.
func StringOr(x, y StringP, z ...StringP) StringP { return stringFn(orf(x, y, z)) }

// StringNot returns the negation of the given string predicate.
func StringNot(x StringP) StringP { return stringFn(notf(x)) }

type (
	// ValueP is a predicate constructor for fields backed by a
	// database/sql/driver.Valuer.
	ValueP interface {
		Fielder
		valueP()
	}
	valueFn func(string) P
)

func (f valueFn) Field(name string) P { return f(name) }
func (valueFn) valueP()               {}

// ValueEQ returns a predicate to check if a valuer field is equal to the given value.
func ValueEQ(v driver.Valuer) ValueP { return valueFn(eqf(v)) }

// ValueNEQ returns a predicate to check if a valuer field is not equal to the given value.
func ValueNEQ(v driver.Valuer) ValueP { return valueFn(neqf(v)) }

// ValueNil returns a predicate to check if a valuer field is nil.
func ValueNil() ValueP { return valueFn(nilf()) }

// ValueNotNil returns a predicate to check if a valuer field is not nil.
func ValueNotNil() ValueP { return valueFn(notNilf()) }

// ValueAnd returns the conjunction of the given valuer predicates.
func ValueAnd(x, y ValueP, z ...ValueP) ValueP { return valueFn(andf(x, y, z)) }

// ValueOr returns the disjunction of the given valuer predicates.
func ValueOr(x, y ValueP, z ...ValueP) ValueP { return valueFn(orf(x, y, z)) }

// ValueNot returns the negation of the given valuer predicate.
func ValueNot(x ValueP) ValueP { return valueFn(notf(x)) }

type (
	// OtherP is a predicate constructor for fields of non-builtin types.
	OtherP interface {
		Fielder
		otherP()
	}
	otherFn func(string) P
)

func (f otherFn) Field(name string) P { return f(name) }
func (otherFn) otherP()               {}

// OtherEQ returns a predicate to check if an other field is equal to the given value.
func OtherEQ(v driver.Valuer) OtherP { return otherFn(eqf(v)) }

// OtherNEQ returns a predicate to check if an other field is not equal to the given value.
func OtherNEQ(v driver.Valuer) OtherP { return otherFn(neqf(v)) }

// OtherNil returns a predicate to check if an other field is nil.
func OtherNil() OtherP { return otherFn(nilf()) }

// OtherNotNil returns a predicate to check if an other field is not nil.
func OtherNotNil() OtherP { return otherFn(notNilf()) }

// OtherAnd returns the conjunction of the given other predicates.
func OtherAnd(x, y OtherP, z ...OtherP) OtherP { return otherFn(andf(x, y, z)) }

// OtherOr returns the disjunction of the given other predicates.
func OtherOr(x, y OtherP, z ...OtherP) OtherP { return otherFn(orf(x, y, z)) }

// OtherNot returns the negation of the given other predicate.
func OtherNot(x OtherP) OtherP { return otherFn(notf(x)) }
