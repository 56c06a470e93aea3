package shortener

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zaz600/go-shortener-cli/internal/entity"
)

// Render печатает результат. В rawOutput для create и expand печатается только короткая ссылка,
// для stats rawOutput ни на что не влияет.
func (s *Service) Render(rawOutput bool, result entity.Result) error {
	h, err := handlerFor(result.Action())
	if err != nil {
		return err
	}
	return s.render(h, rawOutput, result)
}

func (s *Service) render(h actionHandler, rawOutput bool, result entity.Result) error {
	var b strings.Builder
	if err := h.render(&b, rawOutput, result); err != nil {
		return err
	}
	_, err := io.WriteString(s.output, b.String())
	return err
}

// renderFunc печать результата одного действия
type renderFunc func(b *strings.Builder, rawOutput bool, result entity.Result) error

// renderAs приводит результат к типу, который ожидает печать действия
func renderAs[T entity.Result](fn func(b *strings.Builder, rawOutput bool, r T)) renderFunc {
	return func(b *strings.Builder, rawOutput bool, result entity.Result) error {
		r, ok := result.(T)
		if !ok {
			return fmt.Errorf("unsupported result type %T", result)
		}
		fn(b, rawOutput, r)
		return nil
	}
}

func renderCreate(b *strings.Builder, rawOutput bool, r entity.CreateResult) {
	if rawOutput {
		line(b, r.ID)
		return
	}
	line(b, "* Shorten URL *")
	field(b, "Long URL", r.LongURL)
	field(b, "Short URL", r.ID)
}

func renderExpand(b *strings.Builder, rawOutput bool, r entity.ExpandResult) {
	if rawOutput {
		line(b, r.ID)
		return
	}
	line(b, "* Expand URL *")
	field(b, "Long URL", r.LongURL)
	field(b, "Short URL", r.ID)
	field(b, "Link Status", r.Status)
}

func renderStats(b *strings.Builder, _ bool, r entity.StatsResult) {
	line(b, "* URL Stats *")
	field(b, "Long URL", r.LongURL)
	field(b, "Short URL", r.ID)
	field(b, "Link Status", r.Status)
	line(b, "*** Details ***")
	field(b, "Creation date", r.Created)
	field(b, "Short URL clicks", strconv.FormatInt(r.ShortURLClicks, 10))
	field(b, "Long URL clicks", strconv.FormatInt(r.LongURLClicks, 10))
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

// field строка вида "Label:\tvalue"
func field(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(":\t")
	line(b, value)
}
