package uicc

import (
	"fmt"
	"strings"
)

const (
	tagApplicationSpecific = "C9"
	tagSystemSpecific      = "EF"
	tagVolatileQuota       = "C7"
	tagNonVolatileQuota    = "C8"
	tagUICCSystemSpecific  = "EA"
	tagToolkitParams       = "80"
	tagAccessParams        = "81"
)

// Result holds every blob shown to the user. The Raw variants are the values
// without their outer tag and length.
type Result struct {
	ApplicationSpecific    string `json:"applicationSpecific"`
	ApplicationSpecificRaw string `json:"applicationSpecificRaw"`
	SystemSpecific         string `json:"systemSpecific"`
	UICCSystemSpecific     string `json:"uiccSystemSpecific"`
	UICCSystemSpecificRaw  string `json:"uiccSystemSpecificRaw"`
	InstallParams          string `json:"installParams"`
}

func Encode(p Params) (Result, error) {
	p.normalize()
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	var r Result
	var err error
	if r.ApplicationSpecificRaw, err = applicationSpecific(p); err != nil {
		return Result{}, err
	}
	if r.ApplicationSpecific, err = tlv(tagApplicationSpecific, r.ApplicationSpecificRaw); err != nil {
		return Result{}, err
	}
	if r.SystemSpecific, err = SystemSpecific(p); err != nil {
		return Result{}, err
	}
	if r.UICCSystemSpecificRaw, err = uiccSystemSpecific(p); err != nil {
		return Result{}, err
	}
	if r.UICCSystemSpecific, err = tlv(tagUICCSystemSpecific, r.UICCSystemSpecificRaw); err != nil {
		return Result{}, err
	}
	r.InstallParams = r.ApplicationSpecific + r.SystemSpecific + r.UICCSystemSpecific
	return r, nil
}

// SystemSpecific encodes the memory quotas: EF LL C7 02 <ram> C8 02 <nvram>.
func SystemSpecific(p Params) (string, error) {
	value := fmt.Sprintf("%s02%04X%s02%04X", tagVolatileQuota, p.RAMQuota, tagNonVolatileQuota, p.NVRAMQuota)
	return tlv(tagSystemSpecific, value)
}

func applicationSpecific(p Params) (string, error) {
	var sb strings.Builder
	for _, t := range p.ASPTags {
		if t.Tag == "" {
			continue
		}
		payload, err := t.payloadHex()
		if err != nil {
			return "", err
		}
		entry, err := tlv(t.Tag, payload)
		if err != nil {
			return "", err
		}
		sb.WriteString(entry)
	}
	return sb.String(), nil
}

func uiccSystemSpecific(p Params) (string, error) {
	var toolkit strings.Builder
	toolkit.WriteString(ByteHex(p.Priority))
	toolkit.WriteString(ByteHex(p.Timer))
	toolkit.WriteString(ByteHex(p.EntryLabelLength))
	toolkit.WriteString(ByteHex(p.MenuCount))
	for i := range p.MenuCount {
		// menu position, then "00": any identifier
		toolkit.WriteString(ByteHex(i + 1))
		toolkit.WriteString("00")
	}
	toolkit.WriteString(ByteHex(p.Channel))
	// no minimum security level
	toolkit.WriteString("00")

	out, err := tlv(tagToolkitParams, toolkit.String())
	if err != nil {
		return "", err
	}
	if !p.UseUICCFS {
		return out, nil
	}

	aid, err := tlv("", p.ADF1AID)
	if err != nil {
		return "", err
	}
	// empty file system AID, access domain 00, no DAP, then the same for ADF#1
	access, err := tlv(tagAccessParams, "00"+"0100"+"00"+aid+"0100"+"00")
	if err != nil {
		return "", err
	}
	return out + access, nil
}
