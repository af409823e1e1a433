package constants

// DownloadKind selects one of the generated output files for a job.
type DownloadKind string

const (
	DownloadMulti       DownloadKind = "multi"        // XpressB2B multi-address sheet
	DownloadSimplified  DownloadKind = "simplified"   // simplified template sheet
	DownloadB2BShipment DownloadKind = "b2b_shipment" // B2B shipment block sheet
	DownloadResult      DownloadKind = "result"       // raw extraction result JSON
)

// DownloadKinds lists every kind the server can serve.
var DownloadKinds = []DownloadKind{
	DownloadMulti,
	DownloadSimplified,
	DownloadB2BShipment,
	DownloadResult,
}

// FileName returns the attachment name the server uses for this kind.
func (k DownloadKind) FileName() string {
	switch k {
	case DownloadMulti:
		return "XpressB2BMultiAddressSheet.xlsx"
	case DownloadSimplified:
		return "SimplifiedTemplate.xlsx"
	case DownloadB2BShipment:
		return "B2BShipment.xlsx"
	case DownloadResult:
		return "extraction_result.json"
	}
	return string(k)
}

// Valid reports whether k is one of the known download kinds.
func (k DownloadKind) Valid() bool {
	for _, known := range DownloadKinds {
		if k == known {
			return true
		}
	}
	return false
}
