package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"booklog/internal/book"
)

var (
	titleWords = []string{"Silent", "River", "Garden", "Winter", "Harbor", "Lantern", "Mountain", "Paper", "Glass", "Orchard"}
	authors    = []string{"Natsume Soseki", "Haruki Murakami", "Yoko Ogawa", "Ursula K. Le Guin", "Italo Calvino", "Toni Morrison"}
	publishers = []string{"Shinchosha", "Kodansha", "Iwanami Shoten", "Penguin", "Vintage", "Hayakawa"}
	thoughts   = []string{"Slow start, strong ending.", "Would reread.", "Dense but rewarding.", "Not for me.", "Lovely prose."}
)

// generateDrafts builds n plausible entries read within the year before today.
func generateDrafts(rng *rand.Rand, n int, today time.Time) []book.Draft {
	drafts := make([]book.Draft, 0, n)
	for i := range n {
		read := today.AddDate(0, 0, -rng.IntN(365))
		published := read.AddDate(-rng.IntN(60), -rng.IntN(12), 0)
		title := fmt.Sprintf("%s %s", pick(rng, titleWords), pick(rng, titleWords))

		drafts = append(drafts, book.Draft{
			Title:            fmt.Sprintf("%s #%d", title, i+1),
			AuthorTranslator: pick(rng, authors),
			Publisher:        pick(rng, publishers),
			PublishedDate:    published.Format(book.DateLayout),
			ReadDate:         read.Format(book.DateLayout),
			Summary:          fmt.Sprintf("A book about %s.", pick(rng, titleWords)),
			Thoughts:         pick(rng, thoughts),
		})
	}
	return drafts
}

func pick(rng *rand.Rand, words []string) string {
	return words[rng.IntN(len(words))]
}
