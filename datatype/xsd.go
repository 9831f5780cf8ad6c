package datatype

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/enola-dev/enola-sub007/vocabulary"
)

// Date is a calendar date without time zone, the value type of xsd:date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD and YYYYMMDD; the day must exist.
func ParseDate(text string) (Date, error) {
	digits := strings.ReplaceAll(text, "-", "")
	if len(digits) != 8 {
		return Date{}, fmt.Errorf("want 8 digits, got %q", text)
	}
	t, err := time.Parse("20060102", digits)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Sniffable XSD datatypes, in matching priority. Date precedes integer so
// that "20240115" is a date.
var (
	Boolean = New(vocabulary.XsdBoolean, `true|false`,
		strconv.FormatBool, parseBool)

	XsdDate = New(vocabulary.XsdDate, `\d{4}-?\d{2}-?\d{2}`,
		Date.String, ParseDate)

	DateTime = New(vocabulary.XsdDateTime,
		`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?`,
		func(t time.Time) string { return t.Format(time.RFC3339Nano) },
		parseDateTime)

	Integer = New(vocabulary.XsdInteger, `[+-]?\d+`,
		func(i *big.Int) string { return i.String() },
		parseBigInt)

	Double = New(vocabulary.XsdDouble,
		`[+-]?(\d+\.\d*|\.\d+)([eE][+-]?\d+)?|[+-]?\d+[eE][+-]?\d+|[+-]?INF|NaN`,
		func(f float64) string { return formatFloat(f, 64) },
		func(s string) (float64, error) { return parseFloat(s, 64) })
)

// Non-sniffable XSD datatypes. They are only reached by IRI or by Go type.
var (
	Int = New(vocabulary.XsdInt, "",
		func(i int32) string { return strconv.FormatInt(int64(i), 10) },
		func(s string) (int32, error) {
			i, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 32)
			return int32(i), err
		})

	Long = New(vocabulary.XsdLong, "",
		func(i int64) string { return strconv.FormatInt(i, 10) },
		func(s string) (int64, error) { return strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 64) })

	UnsignedInt = New(vocabulary.XsdUnsignedInt, "",
		func(i uint32) string { return strconv.FormatUint(uint64(i), 10) },
		func(s string) (uint32, error) {
			i, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 32)
			return uint32(i), err
		})

	UnsignedLong = New(vocabulary.XsdUnsignedLong, "",
		func(i uint64) string { return strconv.FormatUint(i, 10) },
		func(s string) (uint64, error) { return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64) })

	Float = New(vocabulary.XsdFloat, "",
		func(f float32) string { return formatFloat(float64(f), 32) },
		func(s string) (float32, error) {
			f, err := parseFloat(s, 32)
			return float32(f), err
		})

	Base64Binary = New(vocabulary.XsdBase64Binary, "",
		base64.StdEncoding.EncodeToString,
		base64.StdEncoding.DecodeString)

	AnyURI = New(vocabulary.XsdAnyURI, "",
		func(u *url.URL) string { return u.String() },
		url.Parse)
)

// XSD returns the base vocabulary in matching priority.
func XSD() []Codec {
	return []Codec{
		Boolean, XsdDate, DateTime, Integer, Double,
		Int, Long, UnsignedInt, UnsignedLong, Float, Base64Binary, AnyURI,
	}
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Without a zone the value is taken as UTC
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}

func parseBigInt(s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(strings.TrimPrefix(s, "+"), 10)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return i, nil
}

func parseFloat(s string, bits int) (float64, error) {
	switch s {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	// strconv also accepts "Inf" and hex floats, which XSD does not
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "x") {
		return 0, fmt.Errorf("not an xsd float: %q", s)
	}
	return strconv.ParseFloat(s, bits)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
