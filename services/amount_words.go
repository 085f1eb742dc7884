package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountToWords converts an amount to Indian English words, including paise.
// Example: 3324.06 → "Three Thousand Three Hundred and Twenty Four Rupees and Six Paise Only/-"
func AmountToWords(amount float64) string {
	d := decimal.NewFromFloat(finite(amount)).Round(2)
	if d.IsNegative() {
		return "Negative " + AmountToWords(d.Neg().InexactFloat64())
	}

	rupees := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	switch {
	case rupees == 0 && paise == 0:
		return "Zero Rupees Only/-"
	case paise == 0:
		return convertToIndianWords(rupees) + " Rupees Only/-"
	case rupees == 0:
		return convertUnder100(paise) + " Paise Only/-"
	}
	return convertToIndianWords(rupees) + " Rupees and " + convertUnder100(paise) + " Paise Only/-"
}

func convertToIndianWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if n >= 10000000 {
		crores := n / 10000000
		// Amounts past 99 crores keep grouping in crores.
		if crores >= 100 {
			parts = append(parts, convertToIndianWords(crores)+" "+plural(crores, "Crore"))
		} else {
			parts = append(parts, convertUnder100(crores)+" "+plural(crores, "Crore"))
		}
		n %= 10000000
	}

	if n >= 100000 {
		parts = append(parts, convertUnder100(n/100000)+" "+plural(n/100000, "Lakh"))
		n %= 100000
	}

	if n >= 1000 {
		parts = append(parts, convertUnder100(n/1000)+" Thousand")
		n %= 1000
	}

	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

// plural returns unit with an "s" unless count is one.
func plural(count int64, unit string) string {
	if count == 1 {
		return unit
	}
	return unit + "s"
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
