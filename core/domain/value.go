// ABOUTME: Value-for-value payment model (podcast:value and podcast:valueRecipient)
// ABOUTME: Split totals are reported but never enforced

package domain

// UnknownArtist names payment recipients that published no name
const UnknownArtist = "Unknown Artist"

// ValueBlock describes how listeners can stream payments to recipients
type ValueBlock struct {
	Type       string           `json:"type"`
	Method     string           `json:"method"`
	Suggested  string           `json:"suggested,omitempty"`
	Recipients []ValueRecipient `json:"recipients"`
}

// ValueRecipient is one payee and its share of a payment
type ValueRecipient struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	Split       int    `json:"split"`
	CustomKey   string `json:"customKey,omitempty"`
	CustomValue string `json:"customValue,omitempty"`
	Fee         bool   `json:"fee,omitempty"`
}

// PaymentRecipient is the flattened form handed to payment code
type PaymentRecipient struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
	Split   int    `json:"split"`
}

// Valid reports whether a recipient can receive payments
func (r ValueRecipient) Valid() bool {
	return r.Type != "" && r.Address != "" && r.Split > 0
}

// TotalSplit sums the splits of all recipients
func (v *ValueBlock) TotalSplit() int {
	if v == nil {
		return 0
	}
	total := 0
	for _, r := range v.Recipients {
		total += r.Split
	}
	return total
}

// SplitsBalanced reports whether the splits add up to 100
func (v *ValueBlock) SplitsBalanced() bool {
	return v.TotalSplit() == 100
}

// PaymentRecipients flattens the recipients for payment code
func (v *ValueBlock) PaymentRecipients() []PaymentRecipient {
	if v == nil {
		return nil
	}
	out := make([]PaymentRecipient, 0, len(v.Recipients))
	for _, r := range v.Recipients {
		name := r.Name
		if name == "" {
			name = UnknownArtist
		}
		out = append(out, PaymentRecipient{
			Name:    name,
			Address: r.Address,
			Type:    r.Type,
			Split:   r.Split,
		})
	}
	return out
}
