package parser

import (
	"podfeed-api/core/domain"
	"podfeed-api/pkg/utils/parse"
)

// parseValueBlock reads the nearest podcast:value element in scope. It returns
// the block (nil when no recipient survives) and the number of dropped recipients.
func parseValueBlock(s scope) (*domain.ValueBlock, int) {
	valueEl := s.fuzzy("podcast:value")
	if valueEl == nil {
		return nil, 0
	}

	block := &domain.ValueBlock{
		Type:       attrOf(valueEl, "type"),
		Method:     attrOf(valueEl, "method"),
		Suggested:  attrOf(valueEl, "suggested"),
		Recipients: []domain.ValueRecipient{},
	}

	dropped := 0
	for _, el := range within(valueEl).allFuzzy("podcast:valueRecipient") {
		r := domain.ValueRecipient{
			Name:        attrOf(el, "name"),
			Type:        attrOf(el, "type"),
			Address:     attrOf(el, "address"),
			Split:       parse.LeadingInt(attrOf(el, "split")),
			CustomKey:   attrOf(el, "customKey"),
			CustomValue: attrOf(el, "customValue"),
			Fee:         attrOf(el, "fee") == "true",
		}
		if !r.Valid() {
			dropped++
			continue
		}
		block.Recipients = append(block.Recipients, r)
	}

	if len(block.Recipients) == 0 {
		return nil, dropped
	}
	return block, dropped
}
