package segment

// mergeChapters folds chapters that share an identical title into the
// first-encountered one: subchapters append in encounter order, chapter-own
// text concatenates with a blank-line separator, the page range widens to
// the union, and token counts sum. Counts were computed per occurrence
// before merging, which keeps the operation associative and idempotent.
// Output order is the order of each title's first occurrence.
func mergeChapters(chapters []Chapter) ([]Chapter, []string) {
	slot := make(map[string]int, len(chapters))
	var order []string
	merged := make(map[string]Chapter, len(chapters))
	var duplicates []string
	dupSeen := make(map[string]bool)

	for _, ch := range chapters {
		if _, seen := slot[ch.Title]; !seen {
			slot[ch.Title] = len(order)
			order = append(order, ch.Title)
			merged[ch.Title] = ch
			continue
		}
		first := merged[ch.Title]
		first.Subchapters = append(first.Subchapters, ch.Subchapters...)
		switch {
		case first.Text == "":
			first.Text = ch.Text
		case ch.Text != "":
			first.Text += "\n\n" + ch.Text
		}
		if ch.FromPage < first.FromPage {
			first.FromPage = ch.FromPage
		}
		if ch.ToPage > first.ToPage {
			first.ToPage = ch.ToPage
		}
		first.TokenCount += ch.TokenCount
		merged[ch.Title] = first
		if !dupSeen[ch.Title] {
			dupSeen[ch.Title] = true
			duplicates = append(duplicates, ch.Title)
		}
	}

	out := make([]Chapter, 0, len(order))
	for _, title := range order {
		out = append(out, merged[title])
	}
	return out, duplicates
}

// finalize stamps chapter IDs and computes the document token total.
func finalize(chapters []Chapter) Document {
	doc := Document{Chapters: chapters}
	for i := range doc.Chapters {
		ch := &doc.Chapters[i]
		ch.ID = chapterID(ch.Title, ch.FromPage)
		doc.TotalTokens += ch.TokenCount
	}
	return doc
}
