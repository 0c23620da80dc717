package sku

import (
	"github.com/ohmyshower/order-cli/internal/model"
)

// RawLine is one product line as extracted from the email text, before any
// resolution. Zero values count as missing.
type RawLine struct {
	Family   string `json:"family"`
	Length   int    `json:"length"`
	Width    int    `json:"width"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// ResolveLine turns one raw extracted line into a resolved product line, or
// a FailedLine describing the first step that failed. lineNumber is
// 1-based and only used for diagnostics. threshold <= 0 falls back to
// DefaultThreshold.
func ResolveLine(raw RawLine, lineNumber int, families []Family, colors []Color, threshold float64) (model.ProductLine, *model.FailedLine) {
	if raw.Family == "" || raw.Color == "" || raw.Length == 0 || raw.Width == 0 || raw.Quantity == 0 {
		return model.ProductLine{}, &model.FailedLine{
			LineNumber: lineNumber,
			Reason:     model.ReasonMissingFields,
		}
	}

	family, famDet, ok := ResolveFamily(raw.Family, families, threshold)
	if !ok {
		return model.ProductLine{}, &model.FailedLine{
			LineNumber:   lineNumber,
			Reason:       model.ReasonFamilyMatch,
			Extracted:    raw.Family,
			MatchScore:   famDet.BestScore,
			ClosestMatch: famDet.Closest,
		}
	}

	colorCode, colDet, ok := ResolveColor(raw.Color, colors, threshold)
	if !ok {
		return model.ProductLine{}, &model.FailedLine{
			LineNumber:   lineNumber,
			Reason:       model.ReasonColorMatch,
			Extracted:    raw.Color,
			MatchScore:   colDet.BestScore,
			ClosestMatch: colDet.Closest,
		}
	}

	code, err := Compose(family.Prefix, raw.Length, raw.Width, colorCode)
	if err != nil {
		return model.ProductLine{}, &model.FailedLine{
			LineNumber: lineNumber,
			Reason:     model.ReasonConstruction,
			Extracted:  family.Prefix + "/" + colorCode,
		}
	}

	return model.ProductLine{
		SKU:        code,
		Quantity:   raw.Quantity,
		FamilyDesc: family.Description,
	}, nil
}
