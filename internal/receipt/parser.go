// Package receipt turns raw OCR text from a receipt image into a structured
// best-guess expense record. Every extraction pass is total: missing or
// unparseable input degrades to a documented default instead of an error, so
// the result is always safe to present for user review.
package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ParsedReceipt is the best-guess expense record extracted from one receipt.
type ParsedReceipt struct {
	MerchantName      string   `json:"merchantName"`
	TotalAmount       int64    `json:"totalAmount"`
	Date              string   `json:"date"`
	Items             []string `json:"items"`
	SuggestedCategory string   `json:"suggestedCategory"`
	RawText           string   `json:"rawText"`
}

const (
	// UnknownMerchant is returned when no line of text is available.
	UnknownMerchant = "알 수 없음"
	// DefaultCategory is the catch-all when no keyword matches.
	DefaultCategory = "기타"
)

// amountPatterns are tried in order on every line. The captured group is the
// grouped-digit number; the running maximum across all matches is taken as
// the total.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`총\s*금액\s*[:\s]*(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`합계\s*[:\s]*(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)total\s*[:\s]*(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*원?$`),
}

// datePatterns are tried in order; the first line with any match wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})[.-](\d{1,2})[.-](\d{1,2})`),
	regexp.MustCompile(`(\d{2})[.-](\d{1,2})[.-](\d{1,2})`),
	regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`),
}

// metadataPattern marks lines carrying totals, payment method, date/time,
// phone, address or business-registration info. Such lines never become items.
var metadataPattern = regexp.MustCompile(`(?i)총|합계|금액|카드|현금|date|time|tel|주소|사업자`)

// pricePattern is the grouped-digit token an item line must contain.
var pricePattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*`)

// categoryEntry pairs a category label with its keyword substrings. The slice
// order is load-bearing: suggestion is first-match-wins, so an earlier entry
// shadows later ones.
type categoryEntry struct {
	name     string
	keywords []string
}

var categoryTable = []categoryEntry{
	{"식비", []string{"음식", "식당", "카페", "커피", "치킨", "피자", "햄버거", "맥도날드", "kfc", "버거킹", "스타벅스", "이디야"}},
	{"교통비", []string{"주유소", "gs칼텍스", "sk에너지", "s-oil", "버스", "지하철", "택시"}},
	{"쇼핑", []string{"마트", "이마트", "롯데마트", "홈플러스", "코스트코", "쇼핑몰", "백화점"}},
	{"의료/건강", []string{"병원", "약국", "의원", "한의원", "치과"}},
	{"문화/여가", []string{"영화관", "cgv", "롯데시네마", "메가박스", "노래방", "pc방"}},
	{"통신비", []string{"통신", "skt", "kt", "lg u+"}},
	{"주거비", []string{"아파트", "빌라", "원룸", "전기", "가스", "수도"}},
	{"교육", []string{"학원", "서점", "교보문고", "영풍문고"}},
}

// Parse extracts a ParsedReceipt from raw OCR text. It is a pure function:
// identical input yields identical output (modulo the today-default when no
// date is present), and it never fails.
func Parse(text string) ParsedReceipt {
	lines := splitLines(text)

	merchant := extractMerchant(lines)
	items := extractItems(lines)

	return ParsedReceipt{
		MerchantName:      merchant,
		TotalAmount:       extractAmount(lines),
		Date:              extractDate(lines, time.Now()),
		Items:             items,
		SuggestedCategory: suggestCategory(merchant, items),
		RawText:           text,
	}
}

// splitLines breaks the OCR text into trimmed, non-empty lines in order.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractMerchant takes the first line verbatim; receipts conventionally
// print the store name first.
func extractMerchant(lines []string) string {
	if len(lines) == 0 {
		return UnknownMerchant
	}
	return lines[0]
}

// extractAmount scans every line with every amount pattern and keeps the
// largest matched value. The true total is not reliably the first or last
// match, so the maximum is the chosen heuristic. Multiple matches are never
// summed.
func extractAmount(lines []string) int64 {
	var total int64
	for _, line := range lines {
		for _, pattern := range amountPatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			amount, err := strconv.ParseInt(strings.ReplaceAll(match[1], ",", ""), 10, 64)
			if err != nil {
				continue
			}
			if amount > total {
				total = amount
			}
		}
	}
	return total
}

// extractDate returns the first date found, scanning lines in order and
// patterns in order within each line. Two-digit years expand into the
// current century. Defaults to today's date.
func extractDate(lines []string, now time.Time) string {
	for _, line := range lines {
		for _, pattern := range datePatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			year, _ := strconv.Atoi(match[1])
			month, _ := strconv.Atoi(match[2])
			day, _ := strconv.Atoi(match[3])

			if len(match[1]) == 2 {
				century := now.Year() / 100 * 100
				year += century
			}

			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}
	return now.Format("2006-01-02")
}

// extractItems keeps lines that look like priced entries: not metadata, not
// a date line, containing a grouped-digit token, and longer than three
// characters. Original order is preserved and duplicates are kept.
func extractItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		if metadataPattern.MatchString(line) || matchesDate(line) {
			continue
		}
		if pricePattern.MatchString(line) && utf8.RuneCountInString(line) > 3 {
			items = append(items, line)
		}
	}
	return items
}

// matchesDate reports whether any date pattern hits the line. Date lines
// count as metadata for item extraction.
func matchesDate(line string) bool {
	for _, pattern := range datePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// suggestCategory matches the lowercased merchant+items text against the
// category table in declaration order; the first category with any keyword
// hit wins, regardless of how many keywords later categories would match.
func suggestCategory(merchant string, items []string) string {
	fullText := strings.ToLower(merchant + " " + strings.Join(items, " "))
	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(fullText, keyword) {
				return entry.name
			}
		}
	}
	return DefaultCategory
}
