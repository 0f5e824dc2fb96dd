// Package view holds the HTML fragments streamed to clients over SSE.
// Components are small and self-contained; page chrome lives in the
// static assets, and the server only patches the dynamic regions.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// TVLoginStatus renders the pairing status region on the approval page.
func TVLoginStatus(status domain.TVLoginStatus, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="tv-login-status" class="tv-login-status tv-login-status-%s">`,
			templ.EscapeString(string(status)))
		fmt.Fprintf(&b, `<p>%s</p>`, templ.EscapeString(message))
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FlashStep renders one card of a flash run into the play region.
func FlashStep(step service.Step) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="flash-card" class="flash-card flash-card-%s" data-step="%d" data-substep="%d" data-total="%d">`,
			templ.EscapeString(string(step.Kind)), step.Index, step.SubStep, step.Total)

		switch {
		case len(step.Dots) > 0:
			b.WriteString(`<div class="dot-field">`)
			for _, p := range step.Dots {
				fmt.Fprintf(&b, `<span class="dot" style="left:%.2f%%;top:%.2f%%"></span>`, p.X, p.Y)
			}
			b.WriteString(`</div>`)
		case step.Symbol != "":
			fmt.Fprintf(&b, `<div class="flash-symbol">%s</div>`, templ.EscapeString(step.Symbol))
		case step.Kind == domain.StimulusKana:
			if step.Emoji != "" {
				fmt.Fprintf(&b, `<div class="flash-emoji">%s</div>`, templ.EscapeString(step.Emoji))
			}
			switch step.Display {
			case "hiragana":
				fmt.Fprintf(&b, `<div class="flash-word">%s</div>`, templ.EscapeString(step.Word))
			case "kanji":
				fmt.Fprintf(&b, `<div class="flash-kanji">%s</div>`, templ.EscapeString(step.Kanji))
				fmt.Fprintf(&b, `<div class="flash-word flash-word-sub">%s</div>`, templ.EscapeString(step.Word))
			default:
				fmt.Fprintf(&b, `<div class="flash-word">%s</div>`, templ.EscapeString(step.Word))
				fmt.Fprintf(&b, `<div class="flash-kanji flash-kanji-sub">%s</div>`, templ.EscapeString(step.Kanji))
			}
		default:
			if step.Emoji != "" {
				fmt.Fprintf(&b, `<div class="flash-emoji">%s</div>`, templ.EscapeString(step.Emoji))
			}
			fmt.Fprintf(&b, `<div class="flash-word">%s</div>`, templ.EscapeString(step.Word))
		}

		// The client reads data-cue and speaks it; pacing on the server
		// side mirrors the clip duration.
		fmt.Fprintf(&b, `<div class="flash-cue" data-cue="%s" hidden></div>`, templ.EscapeString(step.CueLabel))
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FlashDone renders the completion screen with any newly earned badges.
func FlashDone(cardCount int, badges []domain.BadgeDefinition) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="flash-card" class="flash-card flash-done">`)
		fmt.Fprintf(&b, `<div class="flash-done-title">おわり！ %d まいがんばったね 🎉</div>`, cardCount)
		if len(badges) > 0 {
			b.WriteString(`<ul class="new-badges">`)
			for _, badge := range badges {
				fmt.Fprintf(&b, `<li><span class="badge-icon">%s</span><span class="badge-name">%s</span></li>`,
					templ.EscapeString(badge.Icon), templ.EscapeString(badge.Name))
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
