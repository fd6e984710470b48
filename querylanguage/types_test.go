package querylanguage

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fieldCase renders a typed predicate against a named field and
// compares the printed expression.
type fieldCase struct {
	name string
	p    Fielder
	want string
}

func runFieldCases(t *testing.T, field string, cases []fieldCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.Field(field).String())
		})
	}
}

func TestBoolField(t *testing.T) {
	runFieldCases(t, "active", []fieldCase{
		{"EQ", BoolEQ(true), `active == true`},
		{"NEQ", BoolNEQ(false), `active != false`},
		{"Nil", BoolNil(), `active == nil`},
		{"NotNil", BoolNotNil(), `active != nil`},
		{"And", BoolAnd(BoolEQ(true), BoolNotNil()), `active == true && active != nil`},
		{"Or", BoolOr(BoolEQ(true), BoolEQ(false)), `active == true || active == false`},
		{"Not", BoolNot(BoolEQ(false)), `!(active == false)`},
	})
}

func TestBytesField(t *testing.T) {
	runFieldCases(t, "digest", []fieldCase{
		{"EQ", BytesEQ([]byte("nexus")), `digest == "bmV4dXM="`},
		{"NEQ", BytesNEQ([]byte("nexus")), `digest != "bmV4dXM="`},
		{"Nil", BytesNil(), `digest == nil`},
		{"NotNil", BytesNotNil(), `digest != nil`},
		{"And", BytesAnd(BytesNotNil(), BytesNEQ([]byte("nexus"))), `digest != nil && digest != "bmV4dXM="`},
		{"Or", BytesOr(BytesNil(), BytesEQ([]byte("nexus"))), `digest == nil || digest == "bmV4dXM="`},
		{"Not", BytesNot(BytesNil()), `!(digest == nil)`},
	})
}

func TestTimeField(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	runFieldCases(t, "published_at", []fieldCase{
		{"EQ", TimeEQ(at), `published_at == "2025-03-01T12:30:00Z"`},
		{"NEQ", TimeNEQ(at), `published_at != "2025-03-01T12:30:00Z"`},
		{"GT", TimeGT(at), `published_at > "2025-03-01T12:30:00Z"`},
		{"GTE", TimeGTE(at), `published_at >= "2025-03-01T12:30:00Z"`},
		{"LT", TimeLT(at), `published_at < "2025-03-01T12:30:00Z"`},
		{"LTE", TimeLTE(at), `published_at <= "2025-03-01T12:30:00Z"`},
		{"Nil", TimeNil(), `published_at == nil`},
		{"NotNil", TimeNotNil(), `published_at != nil`},
		{"And", TimeAnd(TimeNotNil(), TimeLT(at)), `published_at != nil && published_at < "2025-03-01T12:30:00Z"`},
		{"Or", TimeOr(TimeNil(), TimeGT(at)), `published_at == nil || published_at > "2025-03-01T12:30:00Z"`},
		{"Not", TimeNot(TimeNil()), `!(published_at == nil)`},
	})
}

func TestStringField(t *testing.T) {
	runFieldCases(t, "name", []fieldCase{
		{"EQ", StringEQ("gopher"), `name == "gopher"`},
		{"NEQ", StringNEQ("gopher"), `name != "gopher"`},
		{"GT", StringGT("a"), `name > "a"`},
		{"GTE", StringGTE("a"), `name >= "a"`},
		{"LT", StringLT("z"), `name < "z"`},
		{"LTE", StringLTE("z"), `name <= "z"`},
		{"Contains", StringContains("oph"), `contains(name, "oph")`},
		{"ContainsFold", StringContainsFold("OPH"), `contains_fold(name, "OPH")`},
		{"EqualFold", StringEqualFold("Gopher"), `equal_fold(name, "Gopher")`},
		{"HasPrefix", StringHasPrefix("go"), `has_prefix(name, "go")`},
		{"HasSuffix", StringHasSuffix("er"), `has_suffix(name, "er")`},
		{"Nil", StringNil(), `name == nil`},
		{"NotNil", StringNotNil(), `name != nil`},
		{"And", StringAnd(StringHasPrefix("go"), StringNot(StringEQ("gopher"))), `has_prefix(name, "go") && !(name == "gopher")`},
		{"Or", StringOr(StringEQ("a"), StringEQ("b")), `name == "a" || name == "b"`},
		{"Not", StringNot(StringContains("x")), `!(contains(name, "x"))`},
	})
}

func TestIntFields(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		runFieldCases(t, "age", []fieldCase{
			{"EQ", IntEQ(18), `age == 18`},
			{"NEQ", IntNEQ(18), `age != 18`},
			{"GT", IntGT(18), `age > 18`},
			{"GTE", IntGTE(18), `age >= 18`},
			{"LT", IntLT(65), `age < 65`},
			{"LTE", IntLTE(65), `age <= 65`},
			{"Nil", IntNil(), `age == nil`},
			{"NotNil", IntNotNil(), `age != nil`},
			{"And", IntAnd(IntGTE(18), IntLT(65)), `age >= 18 && age < 65`},
			{"Or", IntOr(IntLT(18), IntGTE(65)), `age < 18 || age >= 65`},
			{"Not", IntNot(IntEQ(18)), `!(age == 18)`},
		})
	})
	t.Run("Int8", func(t *testing.T) {
		runFieldCases(t, "age", []fieldCase{
			{"EQ", Int8EQ(18), `age == 18`},
			{"NEQ", Int8NEQ(18), `age != 18`},
			{"GT", Int8GT(-128), `age > -128`},
			{"GTE", Int8GTE(-128), `age >= -128`},
			{"LT", Int8LT(127), `age < 127`},
			{"LTE", Int8LTE(127), `age <= 127`},
			{"Nil", Int8Nil(), `age == nil`},
			{"NotNil", Int8NotNil(), `age != nil`},
			{"And", Int8And(Int8GT(0), Int8LT(100)), `age > 0 && age < 100`},
			{"Or", Int8Or(Int8Nil(), Int8EQ(0)), `age == nil || age == 0`},
			{"Not", Int8Not(Int8Nil()), `!(age == nil)`},
		})
	})
	t.Run("Int16", func(t *testing.T) {
		runFieldCases(t, "year", []fieldCase{
			{"EQ", Int16EQ(2025), `year == 2025`},
			{"NEQ", Int16NEQ(2025), `year != 2025`},
			{"GT", Int16GT(-32768), `year > -32768`},
			{"GTE", Int16GTE(-32768), `year >= -32768`},
			{"LT", Int16LT(32767), `year < 32767`},
			{"LTE", Int16LTE(32767), `year <= 32767`},
			{"Nil", Int16Nil(), `year == nil`},
			{"NotNil", Int16NotNil(), `year != nil`},
			{"And", Int16And(Int16GT(1900), Int16LT(2100)), `year > 1900 && year < 2100`},
			{"Or", Int16Or(Int16Nil(), Int16EQ(0)), `year == nil || year == 0`},
			{"Not", Int16Not(Int16Nil()), `!(year == nil)`},
		})
	})
	t.Run("Int32", func(t *testing.T) {
		runFieldCases(t, "views", []fieldCase{
			{"EQ", Int32EQ(1500), `views == 1500`},
			{"NEQ", Int32NEQ(1500), `views != 1500`},
			{"GT", Int32GT(-2147483648), `views > -2147483648`},
			{"GTE", Int32GTE(-2147483648), `views >= -2147483648`},
			{"LT", Int32LT(2147483647), `views < 2147483647`},
			{"LTE", Int32LTE(2147483647), `views <= 2147483647`},
			{"Nil", Int32Nil(), `views == nil`},
			{"NotNil", Int32NotNil(), `views != nil`},
			{"And", Int32And(Int32GT(0), Int32NotNil()), `views > 0 && views != nil`},
			{"Or", Int32Or(Int32Nil(), Int32EQ(0)), `views == nil || views == 0`},
			{"Not", Int32Not(Int32Nil()), `!(views == nil)`},
		})
	})
	t.Run("Int64", func(t *testing.T) {
		runFieldCases(t, "views", []fieldCase{
			{"EQ", Int64EQ(1500), `views == 1500`},
			{"NEQ", Int64NEQ(1500), `views != 1500`},
			{"GT", Int64GT(-9223372036854775808), `views > -9223372036854775808`},
			{"GTE", Int64GTE(-9223372036854775808), `views >= -9223372036854775808`},
			{"LT", Int64LT(9223372036854775807), `views < 9223372036854775807`},
			{"LTE", Int64LTE(9223372036854775807), `views <= 9223372036854775807`},
			{"Nil", Int64Nil(), `views == nil`},
			{"NotNil", Int64NotNil(), `views != nil`},
			{"And", Int64And(Int64GT(0), Int64NotNil()), `views > 0 && views != nil`},
			{"Or", Int64Or(Int64Nil(), Int64EQ(0)), `views == nil || views == 0`},
			{"Not", Int64Not(Int64Nil()), `!(views == nil)`},
		})
	})
}

func TestUintFields(t *testing.T) {
	t.Run("Uint", func(t *testing.T) {
		runFieldCases(t, "qty", []fieldCase{
			{"EQ", UintEQ(3), `qty == 3`},
			{"NEQ", UintNEQ(3), `qty != 3`},
			{"GT", UintGT(0), `qty > 0`},
			{"GTE", UintGTE(1), `qty >= 1`},
			{"LT", UintLT(10), `qty < 10`},
			{"LTE", UintLTE(10), `qty <= 10`},
			{"Nil", UintNil(), `qty == nil`},
			{"NotNil", UintNotNil(), `qty != nil`},
			{"And", UintAnd(UintGTE(1), UintLTE(10)), `qty >= 1 && qty <= 10`},
			{"Or", UintOr(UintNil(), UintEQ(0)), `qty == nil || qty == 0`},
			{"Not", UintNot(UintNil()), `!(qty == nil)`},
		})
	})
	t.Run("Uint8", func(t *testing.T) {
		runFieldCases(t, "qty", []fieldCase{
			{"EQ", Uint8EQ(3), `qty == 3`},
			{"NEQ", Uint8NEQ(3), `qty != 3`},
			{"GT", Uint8GT(0), `qty > 0`},
			{"GTE", Uint8GTE(1), `qty >= 1`},
			{"LT", Uint8LT(255), `qty < 255`},
			{"LTE", Uint8LTE(255), `qty <= 255`},
			{"Nil", Uint8Nil(), `qty == nil`},
			{"NotNil", Uint8NotNil(), `qty != nil`},
			{"And", Uint8And(Uint8GT(0), Uint8LT(255)), `qty > 0 && qty < 255`},
			{"Or", Uint8Or(Uint8Nil(), Uint8EQ(0)), `qty == nil || qty == 0`},
			{"Not", Uint8Not(Uint8Nil()), `!(qty == nil)`},
		})
	})
	t.Run("Uint16", func(t *testing.T) {
		runFieldCases(t, "port", []fieldCase{
			{"EQ", Uint16EQ(5432), `port == 5432`},
			{"NEQ", Uint16NEQ(5432), `port != 5432`},
			{"GT", Uint16GT(1023), `port > 1023`},
			{"GTE", Uint16GTE(1024), `port >= 1024`},
			{"LT", Uint16LT(65535), `port < 65535`},
			{"LTE", Uint16LTE(65535), `port <= 65535`},
			{"Nil", Uint16Nil(), `port == nil`},
			{"NotNil", Uint16NotNil(), `port != nil`},
			{"And", Uint16And(Uint16GTE(1024), Uint16LT(65535)), `port >= 1024 && port < 65535`},
			{"Or", Uint16Or(Uint16Nil(), Uint16EQ(0)), `port == nil || port == 0`},
			{"Not", Uint16Not(Uint16Nil()), `!(port == nil)`},
		})
	})
	t.Run("Uint32", func(t *testing.T) {
		runFieldCases(t, "crc", []fieldCase{
			{"EQ", Uint32EQ(100000), `crc == 100000`},
			{"NEQ", Uint32NEQ(100000), `crc != 100000`},
			{"GT", Uint32GT(0), `crc > 0`},
			{"GTE", Uint32GTE(0), `crc >= 0`},
			{"LT", Uint32LT(4294967295), `crc < 4294967295`},
			{"LTE", Uint32LTE(4294967295), `crc <= 4294967295`},
			{"Nil", Uint32Nil(), `crc == nil`},
			{"NotNil", Uint32NotNil(), `crc != nil`},
			{"And", Uint32And(Uint32GT(0), Uint32NotNil()), `crc > 0 && crc != nil`},
			{"Or", Uint32Or(Uint32Nil(), Uint32EQ(0)), `crc == nil || crc == 0`},
			{"Not", Uint32Not(Uint32Nil()), `!(crc == nil)`},
		})
	})
	t.Run("Uint64", func(t *testing.T) {
		runFieldCases(t, "bytes", []fieldCase{
			{"EQ", Uint64EQ(1000000000), `bytes == 1000000000`},
			{"NEQ", Uint64NEQ(1000000000), `bytes != 1000000000`},
			{"GT", Uint64GT(0), `bytes > 0`},
			{"GTE", Uint64GTE(0), `bytes >= 0`},
			{"LT", Uint64LT(18446744073709551615), `bytes < 18446744073709551615`},
			{"LTE", Uint64LTE(18446744073709551615), `bytes <= 18446744073709551615`},
			{"Nil", Uint64Nil(), `bytes == nil`},
			{"NotNil", Uint64NotNil(), `bytes != nil`},
			{"And", Uint64And(Uint64GT(0), Uint64NotNil()), `bytes > 0 && bytes != nil`},
			{"Or", Uint64Or(Uint64Nil(), Uint64EQ(0)), `bytes == nil || bytes == 0`},
			{"Not", Uint64Not(Uint64Nil()), `!(bytes == nil)`},
		})
	})
}

func TestFloatFields(t *testing.T) {
	t.Run("Float32", func(t *testing.T) {
		runFieldCases(t, "price", []fieldCase{
			{"EQ", Float32EQ(9.99), `price == 9.99`},
			{"NEQ", Float32NEQ(9.99), `price != 9.99`},
			{"GT", Float32GT(0), `price > 0`},
			{"GTE", Float32GTE(0), `price >= 0`},
			{"LT", Float32LT(100.5), `price < 100.5`},
			{"LTE", Float32LTE(100.5), `price <= 100.5`},
			{"Nil", Float32Nil(), `price == nil`},
			{"NotNil", Float32NotNil(), `price != nil`},
			{"And", Float32And(Float32GT(0), Float32LT(100.5)), `price > 0 && price < 100.5`},
			{"Or", Float32Or(Float32Nil(), Float32EQ(0)), `price == nil || price == 0`},
			{"Not", Float32Not(Float32Nil()), `!(price == nil)`},
		})
	})
	t.Run("Float64", func(t *testing.T) {
		runFieldCases(t, "ratio", []fieldCase{
			{"EQ", Float64EQ(0.75), `ratio == 0.75`},
			{"NEQ", Float64NEQ(0.75), `ratio != 0.75`},
			{"GT", Float64GT(-1e10), `ratio > -10000000000`},
			{"GTE", Float64GTE(-1e10), `ratio >= -10000000000`},
			{"LT", Float64LT(1e10), `ratio < 10000000000`},
			{"LTE", Float64LTE(1e10), `ratio <= 10000000000`},
			{"Nil", Float64Nil(), `ratio == nil`},
			{"NotNil", Float64NotNil(), `ratio != nil`},
			{"And", Float64And(Float64GTE(0), Float64LTE(1)), `ratio >= 0 && ratio <= 1`},
			{"Or", Float64Or(Float64Nil(), Float64EQ(0)), `ratio == nil || ratio == 0`},
			{"Not", Float64Not(Float64Nil()), `!(ratio == nil)`},
		})
	})
}

// ratingValuer carries no exported fields, so it prints as an empty
// JSON object.
type ratingValuer struct {
	stars int
}

func (r ratingValuer) Value() (driver.Value, error) {
	return int64(r.stars), nil
}

func TestValuerFields(t *testing.T) {
	rv := ratingValuer{stars: 5}
	t.Run("Value", func(t *testing.T) {
		runFieldCases(t, "metadata", []fieldCase{
			{"EQ", ValueEQ(rv), `metadata == {}`},
			{"NEQ", ValueNEQ(rv), `metadata != {}`},
			{"Nil", ValueNil(), `metadata == nil`},
			{"NotNil", ValueNotNil(), `metadata != nil`},
			{"And", ValueAnd(ValueNotNil(), ValueNEQ(rv)), `metadata != nil && metadata != {}`},
			{"Or", ValueOr(ValueNil(), ValueEQ(rv)), `metadata == nil || metadata == {}`},
			{"Not", ValueNot(ValueNil()), `!(metadata == nil)`},
		})
	})
	t.Run("Other", func(t *testing.T) {
		runFieldCases(t, "metadata", []fieldCase{
			{"EQ", OtherEQ(rv), `metadata == {}`},
			{"NEQ", OtherNEQ(rv), `metadata != {}`},
			{"Nil", OtherNil(), `metadata == nil`},
			{"NotNil", OtherNotNil(), `metadata != nil`},
			{"And", OtherAnd(OtherNotNil(), OtherNEQ(rv)), `metadata != nil && metadata != {}`},
			{"Or", OtherOr(OtherNil(), OtherEQ(rv)), `metadata == nil || metadata == {}`},
			{"Not", OtherNot(OtherNil()), `!(metadata == nil)`},
		})
	})
}

// Composing three or more typed predicates switches the printed form
// to the parenthesized n-ary shape.
func TestTypedComposition(t *testing.T) {
	runFieldCases(t, "age", []fieldCase{
		{
			"NaryOr",
			IntOr(IntEQ(1), IntEQ(2), IntEQ(3)),
			`(age == 1 || age == 2 || age == 3)`,
		},
		{
			"NaryAnd",
			IntAnd(IntGT(0), IntLT(100), IntNotNil()),
			`(age > 0 && age < 100 && age != nil)`,
		},
		{
			"NotOverNary",
			IntNot(IntOr(IntEQ(1), IntEQ(2), IntEQ(3))),
			`!((age == 1 || age == 2 || age == 3))`,
		},
		{
			"NestedMix",
			IntAnd(IntGTE(18), IntNot(IntOr(IntEQ(21), IntEQ(42)))),
			`age >= 18 && !(age == 21 || age == 42)`,
		},
	})
	runFieldCases(t, "name", []fieldCase{
		{
			"StringNaryOr",
			StringOr(StringEQ("a"), StringEQ("b"), StringEQ("c")),
			`(name == "a" || name == "b" || name == "c")`,
		},
		{
			"StringNaryAnd",
			StringAnd(StringHasPrefix("a"), StringContains("b"), StringHasSuffix("c")),
			`(has_prefix(name, "a") && contains(name, "b") && has_suffix(name, "c"))`,
		},
	})
}
