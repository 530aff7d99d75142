package snapshot

import (
	"strings"

	"github.com/Omersenem/dovizkuru/internal/asset"
)

// CandidateFunc maps an asset identifier to one candidate snapshot file name.
// Each strategy is pure; the store evaluates the ordered list until a file
// resolves.
type CandidateFunc func(assetID string) string

// LowerShortCode maps "TP.DK.USD.A" to "usd.json" and "XAU" to "xau.json".
func LowerShortCode(assetID string) string {
	return strings.ToLower(asset.ShortCode(assetID)) + ".json"
}

// UpperShortCode maps "TP.DK.USD.A" to "USD.json".
func UpperShortCode(assetID string) string {
	return strings.ToUpper(asset.ShortCode(assetID)) + ".json"
}

// SanitizedFull maps the whole identifier: "TP.DK.USD.A" to "tp_dk_usd_a.json".
func SanitizedFull(assetID string) string {
	return strings.ToLower(strings.ReplaceAll(assetID, ".", "_")) + ".json"
}

// DefaultCandidates is the resolution order used in production: canonical
// lowercase short code, then the uppercase form, then the sanitized full
// identifier.
func DefaultCandidates() []CandidateFunc {
	return []CandidateFunc{LowerShortCode, UpperShortCode, SanitizedFull}
}
