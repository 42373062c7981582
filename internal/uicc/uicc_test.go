package uicc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultAID = "A0000000871002FFFFFFFF8903020000"

func TestEncode_Defaults(t *testing.T) {
	r, err := Encode(DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, "", r.ApplicationSpecificRaw)
	assert.Equal(t, "C900", r.ApplicationSpecific)
	assert.Equal(t, "EF08C7020001C8020001", r.SystemSpecific)
	assert.Equal(t, "8008FF01140101000200"+"8118"+"0001000010"+defaultAID+"010000", r.UICCSystemSpecificRaw)
	assert.Equal(t, "EA24"+r.UICCSystemSpecificRaw, r.UICCSystemSpecific)
	assert.Equal(t, "C900"+"EF08C7020001C8020001"+"EA24"+r.UICCSystemSpecificRaw, r.InstallParams)
}

func TestEncode_WithoutFileSystem(t *testing.T) {
	p := DefaultParams()
	p.UseUICCFS = false
	p.MenuCount = 2
	p.ADF1AID = "not used"

	r, err := Encode(p)
	require.NoError(t, err)
	assert.Equal(t, "EA0C800AFF011402010002000200", r.UICCSystemSpecific)
}

func TestEncode_Quotas(t *testing.T) {
	p := DefaultParams()
	p.RAMQuota = 0x1234
	p.NVRAMQuota = 0xABCD

	s, err := SystemSpecific(p)
	require.NoError(t, err)
	assert.Equal(t, "EF08C7021234C802ABCD", s)
}

func TestEncode_ApplicationTags(t *testing.T) {
	p := DefaultParams()
	p.ASPTags = []Tag{
		{Tag: "80", Payload: "0a0b", PayloadMode: ModeHex},
		{Tag: "", Payload: "ignored"},
		{Tag: "81", Payload: "Hi", PayloadMode: ModeASCII},
		{Tag: "82", Payload: "8000", PayloadMode: ModeNumeric, NumericLength: 2},
		{Tag: "83"},
		{Tag: "84", Payload: "1", PayloadMode: ModeNumeric, NumericLength: 4},
	}

	r, err := Encode(p)
	require.NoError(t, err)
	assert.Equal(t, "80020A0B"+"81024869"+"82021F40"+"8300"+"840400000001", r.ApplicationSpecificRaw)
	assert.Equal(t, "C914"+r.ApplicationSpecificRaw, r.ApplicationSpecific)
}

func TestEncode_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		err    error
	}{
		{"priority out of range", func(p *Params) { p.Priority = 256 }, ErrInvalid},
		{"negative quota", func(p *Params) { p.RAMQuota = -1 }, ErrInvalid},
		{"odd aid", func(p *Params) { p.ADF1AID = "ABC" }, ErrInvalid},
		{"bad tag", func(p *Params) { p.ASPTags = []Tag{{Tag: "G1"}} }, ErrInvalid},
		{"bad hex payload", func(p *Params) { p.ASPTags = []Tag{{Tag: "80", Payload: "XYZ"}} }, ErrInvalid},
		{"numeric overflow", func(p *Params) {
			p.ASPTags = []Tag{{Tag: "80", Payload: "65536", PayloadMode: ModeNumeric, NumericLength: 2}}
		}, ErrInvalid},
		{"numeric length", func(p *Params) {
			p.ASPTags = []Tag{{Tag: "80", Payload: "1", PayloadMode: ModeNumeric, NumericLength: 9}}
		}, ErrInvalid},
		{"too many menu entries", func(p *Params) { p.MenuCount = 200 }, ErrTooLong},
		{"long payload", func(p *Params) {
			p.ASPTags = []Tag{{Tag: "80", Payload: strings.Repeat("A", 256), PayloadMode: ModeASCII}}
		}, ErrTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			_, err := Encode(p)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadParams_OverridesOnlyPresentKeys(t *testing.T) {
	p, err := LoadParams(strings.NewReader(`{"priority": 1, "useUiccFs": false, "aspTags": [{"tag": "c0", "payload": "ab"}]}`))
	require.NoError(t, err)

	assert.Equal(t, 1, p.Priority)
	assert.False(t, p.UseUICCFS)
	assert.Equal(t, 2, p.Channel)
	assert.Equal(t, defaultAID, p.ADF1AID)
	assert.Equal(t, []Tag{{Tag: "C0", Payload: "AB", PayloadMode: ModeHex, NumericLength: 2}}, p.ASPTags)
}

func TestLoadParams_Errors(t *testing.T) {
	_, err := LoadParams(strings.NewReader(`{"priority": `))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = LoadParams(strings.NewReader(`{"timer": 999}`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWriteThenLoad(t *testing.T) {
	p := DefaultParams()
	p.ASPTags = []Tag{{Tag: "80", Payload: "01", PayloadMode: ModeHex, NumericLength: 2}}
	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	loaded, err := LoadParams(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestConvertPayload(t *testing.T) {
	tests := []struct {
		name string
		in   Tag
		to   PayloadMode
		want string
	}{
		{"ascii to hex", Tag{Payload: "Hi", PayloadMode: ModeASCII}, ModeHex, "4869"},
		{"numeric to hex", Tag{Payload: "255", PayloadMode: ModeNumeric, NumericLength: 2}, ModeHex, "00FF"},
		{"hex to ascii", Tag{Payload: "4869", PayloadMode: ModeHex}, ModeASCII, "Hi"},
		{"odd hex to ascii keeps payload", Tag{Payload: "486", PayloadMode: ModeHex}, ModeASCII, "486"},
		{"numeric to ascii clears", Tag{Payload: "12", PayloadMode: ModeNumeric}, ModeASCII, ""},
		{"hex to numeric", Tag{Payload: "1F40", PayloadMode: ModeHex}, ModeNumeric, "8000"},
		{"ascii to numeric clears", Tag{Payload: "Hi", PayloadMode: ModeASCII}, ModeNumeric, ""},
		{"same mode", Tag{Payload: "AB", PayloadMode: ModeHex}, ModeHex, "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertPayload(tt.in, tt.to)
			assert.Equal(t, tt.to, got.PayloadMode)
			assert.Equal(t, tt.want, got.Payload)
		})
	}
}

func TestHexHelpers(t *testing.T) {
	assert.Equal(t, "0F", ByteHex(15))
	assert.Equal(t, "FF", ByteHex(255))
	assert.Equal(t, "414243", ASCIIHex("ABC"))

	h, err := NumberHex(8000, 2)
	require.NoError(t, err)
	assert.Equal(t, "1F40", h)
	_, err = NumberHex(256, 1)
	assert.ErrorIs(t, err, ErrInvalid)

	s, err := HexASCII("414243")
	require.NoError(t, err)
	assert.Equal(t, "ABC", s)

	n, err := HexNumber("FF")
	require.NoError(t, err)
	assert.Equal(t, "255", n)
}
