package auctionapi

import (
	"net/url"
	"strings"

	"github.com/bigkaa/auction-browser/internal/domain/model"
)

// Папки файлов на стороне API.
const (
	FolderOnline  = "Online_auctions"
	FolderOffline = "Offline_auctions"
)

// FilesPathPrefix — префикс маршрута прокси файлов.
const FilesPathPrefix = "/files/"

// FolderFor возвращает папку файлов аукциона: онлайн — Online_auctions,
// всё остальное — Offline_auctions.
func FolderFor(t model.AuctionType) string {
	if strings.EqualFold(string(t), string(model.AuctionTypeOnline)) {
		return FolderOnline
	}
	return FolderOffline
}

// ValidFolder сообщает, что папка входит в белый список.
func ValidFolder(folder string) bool {
	return folder == FolderOnline || folder == FolderOffline
}

// ValidFileName проверяет имя файла: непустое, без разделителей пути и "..".
func ValidFileName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return false
	}
	return true
}

// FileURL строит ссылку на файл через прокси сервиса.
// Для пустого или некорректного имени возвращает пустую строку.
func FileURL(folder, file string, download bool) string {
	file = strings.TrimSpace(file)
	if !ValidFolder(folder) || !ValidFileName(file) {
		return ""
	}
	u := FilesPathPrefix + url.PathEscape(folder) + "/" + url.PathEscape(file)
	if download {
		u += "?download=1"
	}
	return u
}
