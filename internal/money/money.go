package money

import "fmt"

// Amounts are integer minor units (paise). Fee rates are basis points,
// so 1000 bps = 10%.

const bpsDenominator = 10000

// Split divides a gross amount into the platform fee and the payee's net
// amount. The fee is rounded half-up to the nearest minor unit and the net
// is the exact remainder, so fee+net always equals gross. Deterministic:
// release retries recompute identical values.
func Split(grossCents, feeBps int64) (feeCents, netCents int64) {
	if grossCents <= 0 || feeBps <= 0 {
		return 0, grossCents
	}
	feeCents = (grossCents*feeBps + bpsDenominator/2) / bpsDenominator
	netCents = grossCents - feeCents
	return feeCents, netCents
}

// FormatINR renders a paise amount as a rupee string for user-facing
// messages, e.g. 900000 -> "₹9000.00".
func FormatINR(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, cents/100, cents%100)
}
