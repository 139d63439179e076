// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pagination

import "fmt"

// Control is a Prev/Next pager over 1-based pages. It holds no state of
// its own; callers rebuild it from their current page and total.
type Control struct {
	Page         int
	Total        int
	OnPageChange func(page int)
}

// PrevEnabled reports whether "Previous" leads to an in-range page.
func (c Control) PrevEnabled() bool {
	return c.Page > 1 && c.Page-1 <= c.Total
}

// NextEnabled reports whether "Next" leads to an in-range page.
func (c Control) NextEnabled() bool {
	return c.Page >= 1 && c.Page < c.Total
}

// ClickPrev requests the previous page. It returns false without calling
// OnPageChange when the button is disabled.
func (c Control) ClickPrev() bool {
	if !c.PrevEnabled() {
		return false
	}
	c.emit(c.Page - 1)
	return true
}

// ClickNext requests the next page. It returns false without calling
// OnPageChange when the button is disabled.
func (c Control) ClickNext() bool {
	if !c.NextEnabled() {
		return false
	}
	c.emit(c.Page + 1)
	return true
}

// Label renders "page N of M".
func (c Control) Label() string {
	return fmt.Sprintf("page %d of %d", c.Page, c.Total)
}

func (c Control) emit(page int) {
	if c.OnPageChange != nil {
		c.OnPageChange(page)
	}
}
