// Package editor реализует редактор блоков аннотации истории.
// После любой операции sortOrder блоков равен 1..N.
package editor

import (
	"errors"
	"fmt"
	"strconv"

	"storysite/internal/models"
)

var (
	ErrSectionNotFound = errors.New("summary section not found")
	ErrLastSection     = errors.New("cannot remove the only summary section")
)

// Editor - упорядоченный список блоков. Не потокобезопасен: принадлежит одной форме.
type Editor struct {
	sections []models.StorySummarySection
	nextID   int
}

// New создает редактор из блоков истории. Пустой список получает один пустой блок.
// Блоки без id и tempId получают tempId, чтобы ключ не зависел от позиции.
func New(sections []models.StorySummarySection) *Editor {
	e := &Editor{
		sections: make([]models.StorySummarySection, 0, len(sections)),
		nextID:   len(sections) + 1,
	}
	e.sections = append(e.sections, sections...)
	for i := range e.sections {
		if e.sections[i].ID == "" && e.sections[i].TempID == "" {
			e.sections[i].TempID = e.newTempID()
		}
	}
	if len(e.sections) == 0 {
		e.sections = append(e.sections, e.blank())
	}
	e.resequence()
	return e
}

// Sections возвращает копию блоков в текущем порядке.
func (e *Editor) Sections() []models.StorySummarySection {
	out := make([]models.StorySummarySection, len(e.sections))
	copy(out, e.sections)
	return out
}

// Len - количество блоков.
func (e *Editor) Len() int {
	return len(e.sections)
}

// Keys возвращает ключи блоков по порядку.
func (e *Editor) Keys() []string {
	keys := make([]string, len(e.sections))
	for i, s := range e.sections {
		keys[i] = s.Key()
	}
	return keys
}

// Add добавляет пустой блок в конец и возвращает его ключ.
func (e *Editor) Add() string {
	s := e.blank()
	e.sections = append(e.sections, s)
	e.resequence()
	return s.TempID
}

// InsertAfter вставляет пустой блок после key и возвращает его ключ.
func (e *Editor) InsertAfter(key string) (string, error) {
	idx, err := e.index(key)
	if err != nil {
		return "", err
	}
	s := e.blank()
	e.insert(idx+1, s)
	e.resequence()
	return s.TempID, nil
}

// Remove удаляет блок. Последний оставшийся блок не удаляется.
func (e *Editor) Remove(key string) error {
	idx, err := e.index(key)
	if err != nil {
		return err
	}
	if len(e.sections) == 1 {
		return ErrLastSection
	}
	e.sections = append(e.sections[:idx], e.sections[idx+1:]...)
	e.resequence()
	return nil
}

// Move переносит блок active на место блока over (как при перетаскивании).
func (e *Editor) Move(active, over string) error {
	if active == over {
		return nil
	}
	from, err := e.index(active)
	if err != nil {
		return err
	}
	to, err := e.index(over)
	if err != nil {
		return err
	}
	e.sections = arrayMove(e.sections, from, to)
	e.resequence()
	return nil
}

// MoveUp сдвигает блок на одну позицию вверх; первый блок остается на месте.
func (e *Editor) MoveUp(key string) error {
	idx, err := e.index(key)
	if err != nil {
		return err
	}
	if idx == 0 {
		return nil
	}
	return e.Move(key, e.sections[idx-1].Key())
}

// MoveDown сдвигает блок на одну позицию вниз; последний блок остается на месте.
func (e *Editor) MoveDown(key string) error {
	idx, err := e.index(key)
	if err != nil {
		return err
	}
	if idx == len(e.sections)-1 {
		return nil
	}
	return e.Move(key, e.sections[idx+1].Key())
}

// UpdateText меняет текст блока.
func (e *Editor) UpdateText(key, text string) error {
	idx, err := e.index(key)
	if err != nil {
		return err
	}
	e.sections[idx].TextContent = &text
	return nil
}

// UpdateImage меняет URL картинки блока.
func (e *Editor) UpdateImage(key, imageURL string) error {
	idx, err := e.index(key)
	if err != nil {
		return err
	}
	e.sections[idx].ImageURL = &imageURL
	return nil
}

func (e *Editor) index(key string) (int, error) {
	for i, s := range e.sections {
		if s.Key() == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrSectionNotFound, key)
}

func (e *Editor) insert(at int, s models.StorySummarySection) {
	e.sections = append(e.sections, models.StorySummarySection{})
	copy(e.sections[at+1:], e.sections[at:])
	e.sections[at] = s
}

func (e *Editor) blank() models.StorySummarySection {
	empty, noImage := "", ""
	return models.StorySummarySection{
		TempID:      e.newTempID(),
		TextContent: &empty,
		ImageURL:    &noImage,
	}
}

// newTempID пропускает номера, уже занятые блоками (например, пришедшими из формы).
func (e *Editor) newTempID() string {
	for {
		id := "temp-" + strconv.Itoa(e.nextID)
		e.nextID++
		if _, err := e.index(id); err != nil {
			return id
		}
	}
}

func (e *Editor) resequence() {
	for i := range e.sections {
		e.sections[i].SortOrder = i + 1
	}
}

// arrayMove переносит элемент from на позицию to, сдвигая остальные.
func arrayMove[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	moved := items[from]
	for i, item := range items {
		if i != from {
			out = append(out, item)
		}
	}
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}
