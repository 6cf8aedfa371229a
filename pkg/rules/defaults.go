package rules

import "github.com/arthur-debert/filerouter/pkg/types"

// DefaultSkipPattern keeps documents themselves out of the intake queue
const DefaultSkipPattern = `\.(md|canvas)$`

// DefaultRules returns the seed rules used when nothing is configured
func DefaultRules() []types.Rule {
	return []types.Rule{
		{Pattern: `\.(png|jpg|jpeg|bmp|gif|webp)$`, Destination: "attachments/image"},
		{Pattern: `\.(pdf)$`, Destination: "attachments/pdf"},
	}
}
