package datatype

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/enola-dev/enola-sub007/vocabulary"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Third-party datatypes for the protobuf well-known types. Their text forms
// follow the protobuf JSON mapping.
var (
	// Timestamp shares its lexical space with xsd:dateTime, which is registered
	// first and so always wins Match. It is reached by IRI or by Go type.
	Timestamp = New(vocabulary.ProtoNamespace+"timestamp",
		`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})`,
		formatTimestamp, parseTimestamp)

	Duration = New(vocabulary.ProtoNamespace+"duration", `-?\d+(\.\d{1,9})?s`,
		formatDuration, parseDuration)
)

// Protobuf returns the third-party vocabulary in matching priority.
func Protobuf() []Codec {
	return []Codec{Timestamp, Duration}
}

func formatTimestamp(ts *timestamppb.Timestamp) string {
	return ts.AsTime().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (*timestamppb.Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	ts := timestamppb.New(t)
	if err := ts.CheckValid(); err != nil {
		return nil, err
	}
	return ts, nil
}

var durationRe = regexp.MustCompile(`^(-)?(\d+)(?:\.(\d{1,9}))?s$`)

func formatDuration(d *durationpb.Duration) string {
	secs, nanos := d.GetSeconds(), d.GetNanos()
	sign := ""
	if secs < 0 || nanos < 0 {
		sign = "-"
		secs, nanos = -secs, -nanos
	}
	out := sign + strconv.FormatInt(secs, 10)
	if nanos != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
		out += "." + frac
	}
	return out + "s"
}

func parseDuration(s string) (*durationpb.Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("not a duration: %q", s)
	}
	secs, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil, err
	}
	var nanos int64
	if m[3] != "" {
		frac := m[3] + strings.Repeat("0", 9-len(m[3]))
		if nanos, err = strconv.ParseInt(frac, 10, 32); err != nil {
			return nil, err
		}
	}
	if m[1] == "-" {
		secs, nanos = -secs, -nanos
	}
	d := &durationpb.Duration{Seconds: secs, Nanos: int32(nanos)}
	if err := d.CheckValid(); err != nil {
		return nil, err
	}
	return d, nil
}
