package opentdb

import (
	"html"
	"strings"
)

// Response mirrors the payload returned by /api.php.
type Response struct {
	ResponseCode int          `json:"response_code"`
	Results      []TriviaItem `json:"results"`
}

// TriviaItem describes a single question as returned by the API. Text fields
// arrive HTML-encoded; use the Decoded* helpers before display.
type TriviaItem struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// DecodedCategory returns the category with HTML entities decoded.
func (t TriviaItem) DecodedCategory() string {
	return DecodeEntities(t.Category)
}

// DecodedQuestion returns the question with HTML entities decoded.
func (t TriviaItem) DecodedQuestion() string {
	return DecodeEntities(t.Question)
}

// DecodedAnswer returns the correct answer with HTML entities decoded.
func (t TriviaItem) DecodedAnswer() string {
	return DecodeEntities(t.CorrectAnswer)
}

// DecodeEntities turns HTML entities (&quot;, &#039;, &amp;, ...) into the
// characters they stand for.
func DecodeEntities(value string) string {
	if !strings.Contains(value, "&") {
		return value
	}
	return html.UnescapeString(value)
}

// responseCodeText maps the API's response_code to a short description.
var responseCodeText = map[int]string{
	0: "success",
	1: "no results",
	2: "invalid parameter",
	3: "token not found",
	4: "token empty",
	5: "rate limit",
}

// ResponseCodeText describes a response_code value.
func ResponseCodeText(code int) string {
	if text, ok := responseCodeText[code]; ok {
		return text
	}
	return "unknown"
}

// CloneItems returns an independent copy of items.
func CloneItems(items []TriviaItem) []TriviaItem {
	if items == nil {
		return nil
	}
	dup := make([]TriviaItem, len(items))
	for i, item := range items {
		dup[i] = item
		if item.IncorrectAnswers != nil {
			dup[i].IncorrectAnswers = append([]string(nil), item.IncorrectAnswers...)
		}
	}
	return dup
}
