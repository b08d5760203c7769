package service

import (
	"errors"

	"github.com/bigkaa/auction-browser/internal/auctionapi"
)

// Ошибки сервисного слоя. Ошибки клиента API переиспользуются,
// чтобы errors.Is работал на всех уровнях.
var (
	// ErrNotFound — аукцион или файл не найден.
	ErrNotFound = auctionapi.ErrNotFound
	// ErrUpstream — API аукционов недоступен.
	ErrUpstream = auctionapi.ErrUpstream
	// ErrMalformedPayload — API вернул некорректный ответ.
	ErrMalformedPayload = auctionapi.ErrMalformedPayload
	// ErrInvalidFile — недопустимая папка или имя файла.
	ErrInvalidFile = errors.New("недопустимое имя файла")
)
