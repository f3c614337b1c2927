package viewer

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"
)

// Quote is one line of the quotes file: author|text|year.
type Quote struct {
	Author string
	Text   string
	Year   string
}

// fallbackQuotes is used when no quotes file is available.
var fallbackQuotes = []Quote{
	{Author: "Albert Einstein", Text: "Imagination is more important than knowledge.", Year: "1929"},
	{Author: "Mahatma Gandhi", Text: "Be the change you wish to see in the world.", Year: "1913"},
	{Author: "Eleanor Roosevelt", Text: "The future belongs to those who believe in the beauty of their dreams.", Year: "1945"},
	{Author: "Mark Twain", Text: "The secret of getting ahead is getting started.", Year: "1894"},
	{Author: "Maya Angelou", Text: "Nothing will work unless you do.", Year: "1993"},
}

// ParseQuotes reads pipe separated quotes, one per line. Lines that do not
// have exactly three non-empty fields are skipped.
func ParseQuotes(r io.Reader) []Quote {
	var quotes []Quote
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		quote := Quote{
			Author: strings.TrimSpace(parts[0]),
			Text:   strings.TrimSpace(parts[1]),
			Year:   strings.TrimSpace(parts[2]),
		}
		if quote.Author == "" || quote.Text == "" || quote.Year == "" {
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}

// LoadQuotes reads the quotes file at path, falling back to the built-in
// set when the file is missing or holds no valid quotes.
func LoadQuotes(path string) []Quote {
	file, err := os.Open(path)
	if err != nil {
		return fallbackQuotes
	}
	defer file.Close()

	quotes := ParseQuotes(file)
	if len(quotes) == 0 {
		return fallbackQuotes
	}
	return quotes
}

// DailyQuote picks the quote for the given day. The day of year indexes
// into the set, so the pick is stable for a whole day and cycles over the
// year.
func DailyQuote(quotes []Quote, now time.Time) Quote {
	if len(quotes) == 0 {
		quotes = fallbackQuotes
	}
	return quotes[now.YearDay()%len(quotes)]
}
