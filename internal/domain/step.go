package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Header is the column layout shared by every step log sink.
var Header = []string{"steps", "reward", "done", "info"}

// InfoRealFrameCount is the info key the adapter adds with the number of raw
// simulator ticks processed so far.
const InfoRealFrameCount = "real_frame_count"

// Info is the per-step diagnostic mapping reported by the raw environment.
// Values are limited to numbers, strings, booleans and nested mappings
// (Info or map[string]any).
type Info map[string]any

// Clone returns a deep copy of the mapping. Nested mappings are copied as Info.
func (in Info) Clone() Info {
	if in == nil {
		return nil
	}
	out := make(Info, len(in))
	for k, v := range in {
		switch nested := v.(type) {
		case Info:
			out[k] = nested.Clone()
		case map[string]any:
			out[k] = Info(nested).Clone()
		default:
			out[k] = v
		}
	}
	return out
}

// Validate checks that every value belongs to the supported set.
func (in Info) Validate() error {
	_, err := in.Render()
	return err
}

// Render produces the stable text form used in the info column: a JSON-style
// object with keys in sorted order. Non-finite floats render as NaN, +Inf and
// -Inf. A nil or empty mapping renders as {}.
func (in Info) Render() (string, error) {
	var b strings.Builder
	if err := renderInfo(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderInfo(b *strings.Builder, in Info) error {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeString(b, k)
		b.WriteByte(':')
		if err := renderValue(b, in[k]); err != nil {
			return fmt.Errorf("info %q: %w", k, err)
		}
	}
	b.WriteByte('}')
	return nil
}

func renderValue(b *strings.Builder, v any) error {
	switch x := v.(type) {
	case string:
		writeString(b, x)
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
	case float32:
		b.WriteString(formatFloat(float64(x), 32))
	case float64:
		b.WriteString(formatFloat(x, 64))
	case Info:
		return renderInfo(b, x)
	case map[string]any:
		return renderInfo(b, Info(x))
	default:
		return fmt.Errorf("%w: unsupported info value type %T", ErrEncoding, v)
	}
	return nil
}

// FormatReward renders a reward the way the reward column stores it.
func FormatReward(r float64) string {
	return formatFloat(r, 64)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func writeString(b *strings.Builder, s string) {
	// json.Marshal of a string never fails.
	q, _ := json.Marshal(s)
	b.Write(q)
}

// StepRecord is one logged transition.
type StepRecord struct {
	// Step is the 1-based index of the step within the run
	Step uint64

	// Reward is the raw environment reward for the step
	Reward float64

	// Done marks the end of an episode
	Done bool

	// Info is a private copy of the environment info mapping
	Info Info
}

// NewStepRecord builds a record holding its own copy of info.
func NewStepRecord(step uint64, reward float64, done bool, info Info) StepRecord {
	return StepRecord{Step: step, Reward: reward, Done: done, Info: info.Clone()}
}

// Row renders the record as columns in Header order.
func (r StepRecord) Row() ([]string, error) {
	info, err := r.Info.Render()
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.FormatUint(r.Step, 10),
		FormatReward(r.Reward),
		strconv.FormatBool(r.Done),
		info,
	}, nil
}
