// Package uicc encodes UICC toolkit install parameters as hex strings.
package uicc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idursun/asciidraw/internal/validation"
)

var (
	ErrInvalid = errors.New("invalid uicc parameters")
	ErrTooLong = errors.New("field exceeds 255 bytes")
)

type PayloadMode string

const (
	ModeHex     PayloadMode = "hex"
	ModeASCII   PayloadMode = "ascii"
	ModeNumeric PayloadMode = "numeric"
)

const defaultNumericLength = 2

// Tag is one application specific TLV entry. Tags left empty are skipped.
type Tag struct {
	Tag           string      `json:"tag"`
	Payload       string      `json:"payload"`
	PayloadMode   PayloadMode `json:"payloadMode" validate:"omitempty,oneof=hex ascii numeric"`
	NumericLength int         `json:"numericLength" validate:"omitempty,min=1,max=8"`
}

type Params struct {
	Priority         int    `json:"priority" validate:"gte=0,lte=255"`
	Timer            int    `json:"timer" validate:"gte=0,lte=255"`
	Channel          int    `json:"channel" validate:"gte=0,lte=255"`
	MenuCount        int    `json:"menuCount" validate:"gte=0,lte=255"`
	EntryLabelLength int    `json:"entryLabelLength" validate:"gte=0,lte=255"`
	UseUICCFS        bool   `json:"useUiccFs"`
	ADF1AID          string `json:"adf1Aid"`
	RAMQuota         int    `json:"ramQuota" validate:"gte=0,lte=65535"`
	NVRAMQuota       int    `json:"nvramQuota" validate:"gte=0,lte=65535"`
	ASPTags          []Tag  `json:"aspTags" validate:"dive"`
}

func DefaultParams() Params {
	return Params{
		Priority:         255,
		Timer:            1,
		Channel:          2,
		MenuCount:        1,
		EntryLabelLength: 20,
		UseUICCFS:        true,
		ADF1AID:          "A0000000871002FFFFFFFF8903020000",
		RAMQuota:         1,
		NVRAMQuota:       1,
		ASPTags:          []Tag{},
	}
}

func (p *Params) normalize() {
	p.ADF1AID = strings.ToUpper(strings.TrimSpace(p.ADF1AID))
	for i := range p.ASPTags {
		t := &p.ASPTags[i]
		t.Tag = strings.ToUpper(strings.TrimSpace(t.Tag))
		if t.PayloadMode == "" {
			t.PayloadMode = ModeHex
		}
		if t.NumericLength == 0 {
			t.NumericLength = defaultNumericLength
		}
		if t.PayloadMode == ModeHex {
			t.Payload = strings.ToUpper(t.Payload)
		}
	}
}

func (p Params) Validate() error {
	if err := validation.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if p.UseUICCFS && !isHex(p.ADF1AID) {
		return fmt.Errorf("%w: adf1Aid %q is not an even length hex string", ErrInvalid, p.ADF1AID)
	}
	for i, t := range p.ASPTags {
		if t.Tag == "" {
			continue
		}
		if len(t.Tag) != 2 || !isHex(t.Tag) {
			return fmt.Errorf("%w: aspTags[%d]: tag %q is not two hex digits", ErrInvalid, i, t.Tag)
		}
		if _, err := t.payloadHex(); err != nil {
			return fmt.Errorf("aspTags[%d]: %w", i, err)
		}
	}
	return nil
}

// payloadHex encodes the payload according to its mode.
func (t Tag) payloadHex() (string, error) {
	switch t.PayloadMode {
	case ModeASCII:
		return ASCIIHex(t.Payload), nil
	case ModeNumeric:
		if t.Payload == "" {
			return "", nil
		}
		n, err := strconv.ParseUint(t.Payload, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: numeric payload %q", ErrInvalid, t.Payload)
		}
		return NumberHex(n, t.NumericLength)
	default:
		if !isHex(t.Payload) {
			return "", fmt.Errorf("%w: hex payload %q", ErrInvalid, t.Payload)
		}
		return strings.ToUpper(t.Payload), nil
	}
}

// ConvertPayload switches the tag to another payload mode, translating the
// payload where a lossless conversion exists and clearing it otherwise.
func ConvertPayload(t Tag, to PayloadMode) Tag {
	from := t.PayloadMode
	if from == "" {
		from = ModeHex
	}
	if t.NumericLength == 0 {
		t.NumericLength = defaultNumericLength
	}
	if from == to {
		return t
	}
	t.PayloadMode = to
	switch to {
	case ModeHex:
		if t.Payload == "" {
			return t
		}
		if h, err := (Tag{Payload: t.Payload, PayloadMode: from, NumericLength: t.NumericLength}).payloadHex(); err == nil {
			t.Payload = h
		}
	case ModeASCII:
		switch {
		case from == ModeNumeric:
			t.Payload = ""
		case len(t.Payload)%2 == 0:
			if s, err := HexASCII(t.Payload); err == nil {
				t.Payload = s
			}
		}
	case ModeNumeric:
		if from != ModeHex || t.Payload == "" {
			t.Payload = ""
			return t
		}
		if n, err := HexNumber(t.Payload); err == nil {
			t.Payload = n
		}
	}
	return t
}

// LoadParams reads a JSON config. Keys missing from the file keep their
// default values.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	p.normalize()
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func LoadParamsFile(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()
	return LoadParams(f)
}

func (p Params) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func DefaultConfigFileName(now time.Time) string {
	return "uicc-config-" + now.Format("2006-01-02") + ".json"
}
