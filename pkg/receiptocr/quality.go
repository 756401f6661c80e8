package receiptocr

import (
	"math"
	"regexp"
)

// Currency markers: the peso sign or a PHP token on a word boundary.
var moneyTokenRE = regexp.MustCompile(`(?i)₱|\bphp\b`)

// Words that show up on payment receipts. A hit means the blob is probably a
// receipt and not logo noise or a misrotated scan.
var receiptKeywordRE = regexp.MustCompile(`(?i)\b(official receipt|amount|php|reference|ref|txn|transaction|date|time|instapay|transfer|account|acct|invoice)\b`)

// scoreVariantText estimates how much a text blob resembles a real receipt.
// Used to pick the best (rotation, segmentation) candidate: longer text, more
// digits, currency markers and receipt keywords all raise the score, plus a
// digit-density bonus so a short but numeric slip can beat long garbage.
// Empty text always loses to any non-empty candidate.
func scoreVariantText(t string) float64 {
	t = normalizeText(t)
	if t == "" {
		return math.Inf(-1)
	}
	l := float64(len(t))
	digits := float64(countDigits(t))
	money := float64(len(moneyTokenRE.FindAllString(t, -1)))
	keywords := float64(len(receiptKeywordRE.FindAllString(t, -1)))
	den := l
	if den < 10 {
		den = 10
	}
	return 0.1*l + 1.5*digits + 8*money + 5*keywords + 40*(digits/den)
}

// scoreReviewText is the simpler score behind the manual-review gate. It is
// tuned against a different threshold than scoreVariantText and must stay a
// separate function.
func scoreReviewText(t string) float64 {
	t = normalizeText(t)
	if t == "" {
		return 0
	}
	digits := float64(countDigits(t))
	money := float64(len(moneyTokenRE.FindAllString(t, -1)))
	keywords := float64(len(receiptKeywordRE.FindAllString(t, -1)))
	return digits + 5*money + 4*keywords
}
