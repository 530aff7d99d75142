// Package asset defines the static catalog of tracked instruments: TCMB
// exchange-rate series quoted in TRY and gold-API symbols quoted in USD.
package asset

import (
	"strings"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// USDSeriesCode is the TCMB series for the USD/TRY rate. Commodity prices are
// converted to TRY through this series.
const USDSeriesCode = "TP.DK.USD.A"

// Catalog is the immutable set of assets known at startup.
type Catalog struct {
	assets []model.Asset
	byID   map[string]model.Asset
}

// DefaultCatalog builds the built-in asset catalog. All TRY-quoted currency
// series carry the lira redenomination config; USD and EUR are marked priority
// so they are refreshed and processed ahead of the rest.
func DefaultCatalog() *Catalog {
	lira := series.TRYRedenomination

	currencies := []model.Asset{
		{ID: "TP.DK.USD.A", Name: "ABD DOLARI", Icon: "💵", Priority: true},
		{ID: "TP.DK.AUD.A", Name: "AVUSTRALYA DOLARI", Icon: "🇦🇺"},
		{ID: "TP.DK.DKK.A", Name: "DANİMARKA KRONU", Icon: "🇩🇰"},
		{ID: "TP.DK.EUR.A", Name: "EURO", Icon: "💶", Priority: true},
		{ID: "TP.DK.GBP.A", Name: "İNGİLİZ STERLİNİ", Icon: "💷"},
		{ID: "TP.DK.CHF.A", Name: "İSVİÇRE FRANGI", Icon: "🇨🇭"},
		{ID: "TP.DK.SEK.A", Name: "İSVEÇ KRONU", Icon: "🇸🇪"},
		{ID: "TP.DK.CAD.A", Name: "KANADA DOLARI", Icon: "🇨🇦"},
		{ID: "TP.DK.KWD.A", Name: "KUVEYT DİNARI", Icon: "🇰🇼"},
		{ID: "TP.DK.NOK.A", Name: "NORVEÇ KRONU", Icon: "🇳🇴"},
		{ID: "TP.DK.SAR.A", Name: "SUUDİ ARABİSTAN RİYALİ", Icon: "🇸🇦"},
		{ID: "TP.DK.JPY.A", Name: "JAPON YENİ", Icon: "💴"},
		{ID: "TP.DK.BGN.A", Name: "BULGAR LEVASI", Icon: "🇧🇬"},
		{ID: "TP.DK.RON.A", Name: "RUMEN LEYİ", Icon: "🇷🇴"},
		{ID: "TP.DK.RUB.A", Name: "RUS RUBLESİ", Icon: "🇷🇺"},
		{ID: "TP.DK.IRR.A", Name: "İRAN RİYALİ", Icon: "🇮🇷"},
		{ID: "TP.DK.CNY.A", Name: "ÇİN YUANI", Icon: "💴"},
		{ID: "TP.DK.PKR.A", Name: "PAKİSTAN RUPİSİ", Icon: "🇵🇰"},
		{ID: "TP.DK.QAR.A", Name: "KATAR RİYALİ", Icon: "🇶🇦"},
	}
	for i := range currencies {
		currencies[i].Kind = model.KindCurrency
		currencies[i].Redenomination = &lira
	}

	commodities := []model.Asset{
		{ID: "XAU", Name: "ALTIN", Icon: "🥇"},
		{ID: "XAG", Name: "GÜMÜŞ", Icon: "🥈"},
		{ID: "XPD", Name: "PALADYUM", Icon: "⚙️"},
		{ID: "HG", Name: "BAKIR", Icon: "🔶"},
		{ID: "BTC", Name: "BITCOIN", Icon: "₿"},
		{ID: "ETH", Name: "ETHEREUM", Icon: "⟠"},
	}
	for i := range commodities {
		commodities[i].Kind = model.KindCommodity
	}

	return NewCatalog(append(currencies, commodities...))
}

// NewCatalog builds a catalog from a fixed asset list.
func NewCatalog(assets []model.Asset) *Catalog {
	byID := make(map[string]model.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	return &Catalog{assets: assets, byID: byID}
}

// Assets returns the catalog in declaration order.
func (c *Catalog) Assets() []model.Asset {
	out := make([]model.Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Ordered returns the catalog with priority assets first, otherwise keeping
// declaration order. The orchestrator and the daily refresh both process
// assets in this order.
func (c *Catalog) Ordered() []model.Asset {
	out := make([]model.Asset, 0, len(c.assets))
	for _, a := range c.assets {
		if a.Priority {
			out = append(out, a)
		}
	}
	for _, a := range c.assets {
		if !a.Priority {
			out = append(out, a)
		}
	}
	return out
}

// Get resolves an asset by identifier.
func (c *Catalog) Get(id string) (model.Asset, error) {
	a, ok := c.byID[id]
	if !ok {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	return a, nil
}

// ShortCode extracts the meaningful sub-component of a dotted series code:
// "TP.DK.USD.A" yields "USD". Identifiers without at least three dotted parts
// are returned unchanged.
func ShortCode(id string) string {
	parts := strings.Split(id, ".")
	if len(parts) >= 3 {
		return parts[2]
	}
	return id
}
