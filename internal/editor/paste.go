package editor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var newlineRe = regexp.MustCompile(`\r\n|\r|\n`)

// Блочные теги, после которых в тексте начинается новая строка.
var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "ul": {}, "ol": {}, "blockquote": {}, "pre": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"tr": {}, "section": {}, "article": {}, "header": {}, "footer": {},
}

// pasteItem - одна строка вставки: текст или картинка.
type pasteItem struct {
	text  string
	image string
}

// PasteText разбивает текст по строкам: блок key получает первую строку,
// остальные строки становятся новыми блоками сразу после него в том же порядке.
// Пустые строки пропускаются. Возвращает ключи всех затронутых блоков.
func (e *Editor) PasteText(key, text string) ([]string, error) {
	return e.paste(key, splitLines(text))
}

// PasteHTML делает то же, что PasteText, для HTML из буфера обмена:
// блочные теги и <br> дают переносы строк, <img> становится блоком с картинкой.
func (e *Editor) PasteHTML(key, html string) ([]string, error) {
	items, err := htmlItems(html)
	if err != nil {
		return nil, err
	}
	return e.paste(key, items)
}

func (e *Editor) paste(key string, items []pasteItem) ([]string, error) {
	idx, err := e.index(key)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	keys := []string{key}
	applyItem(&e.sections[idx].TextContent, &e.sections[idx].ImageURL, items[0])
	for i, item := range items[1:] {
		s := e.blank()
		applyItem(&s.TextContent, &s.ImageURL, item)
		e.insert(idx+1+i, s)
		keys = append(keys, s.TempID)
	}
	e.resequence()
	return keys, nil
}

func applyItem(text, image **string, item pasteItem) {
	if item.image != "" {
		img := item.image
		*image = &img
		return
	}
	t := item.text
	*text = &t
}

func splitLines(text string) []pasteItem {
	var items []pasteItem
	for _, line := range newlineRe.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, pasteItem{text: line})
	}
	return items
}

func htmlItems(html string) ([]pasteItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	w := &htmlWalker{}
	w.walk(doc.Find("body"))
	w.flush()
	return w.items, nil
}

type htmlWalker struct {
	line  strings.Builder
	items []pasteItem
	pre   int
}

func (w *htmlWalker) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			text := node.Text()
			if w.pre == 0 {
				text = newlineRe.ReplaceAllString(text, " ")
			}
			w.line.WriteString(text)
		case name == "br":
			w.flush()
		case name == "img":
			w.flush()
			if src, ok := node.Attr("src"); ok && strings.TrimSpace(src) != "" {
				w.items = append(w.items, pasteItem{image: strings.TrimSpace(src)})
			}
		case name == "script" || name == "style":
		default:
			_, block := blockTags[name]
			if block {
				w.flush()
			}
			if name == "pre" {
				w.pre++
			}
			w.walk(node)
			if name == "pre" {
				w.pre--
			}
			if block {
				w.flush()
			}
		}
	})
}

// flush завершает текущую строку; текст внутри строки схлопывается по пробелам.
func (w *htmlWalker) flush() {
	for _, line := range splitLines(w.line.String()) {
		text := strings.Join(strings.Fields(line.text), " ")
		if text != "" {
			w.items = append(w.items, pasteItem{text: text})
		}
	}
	w.line.Reset()
}
