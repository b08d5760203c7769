// Пакет pagination — число страниц и «окно» номеров страниц для навигации.
package pagination

// TotalPages возвращает ceil(totalCount / pageSize). Пустой результат — 0 страниц.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// ItemKind — вид элемента полосы навигации.
type ItemKind string

// Виды элементов.
const (
	KindPage     ItemKind = "page"
	KindEllipsis ItemKind = "ellipsis"
)

// Item — номер страницы или многоточие.
type Item struct {
	Kind    ItemKind `json:"kind"`
	Page    int      `json:"page,omitempty"`
	Current bool     `json:"current,omitempty"`
}

// Strip — полоса навигации. Prev и Next равны 0, если кнопки не показываются.
type Strip struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Prev    int    `json:"prev,omitempty"`
	Next    int    `json:"next,omitempty"`
	Items   []Item `json:"items"`
}

// Clamp приводит номер страницы к [1, total]. При total == 0 возвращает 1.
func Clamp(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window строит полосу навигации для текущей страницы current из total.
//
// Первая и последняя страницы показываются всегда. Рядом с началом
// (current <= 3) показываются страницы 1..5, рядом с концом (current >= total-2)
// последние пять; в остальных случаях — current±1, а на позициях 2 и total-1
// ставится многоточие. «Назад» отсутствует на первой странице, «Вперёд» — на последней.
func Window(current, total int) Strip {
	if total <= 0 {
		return Strip{Current: 1, Items: []Item{}}
	}
	cur := Clamp(current, total)

	s := Strip{Current: cur, Total: total, Items: make([]Item, 0, 9)}
	if cur > 1 {
		s.Prev = cur - 1
	}
	if cur < total {
		s.Next = cur + 1
	}

	for p := 1; p <= total; p++ {
		switch {
		case p == 1,
			cur <= 3 && (p <= 5 || p == total),
			cur >= total-2 && p >= total-4,
			p >= cur-1 && p <= cur+1,
			p == total:
			s.Items = append(s.Items, Item{Kind: KindPage, Page: p, Current: p == cur})
		case p == 2 || p == total-1:
			s.Items = append(s.Items, Item{Kind: KindEllipsis})
		}
	}
	return s
}

// Pages возвращает номера страниц полосы без многоточий.
func (s Strip) Pages() []int {
	pages := make([]int, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Kind == KindPage {
			pages = append(pages, it.Page)
		}
	}
	return pages
}
