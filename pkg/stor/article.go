// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package stor

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/edrlab/feed-server/pkg/page"
)

// Article data model
type Article struct {
	gorm.Model
	UUID        string `json:"uuid" validate:"required,uuid" gorm:"type:varchar(100);uniqueIndex"`
	Title       string `json:"title" validate:"required"`
	SortTitle   string `json:"-" gorm:"type:varchar(255);index"` // derived from Title, see BeforeSave
	Author      string `json:"author" validate:"required" gorm:"type:varchar(255);index"`
	Summary     string `json:"summary,omitempty"`
	ContentType string `json:"content_type" validate:"required" gorm:"type:varchar(100);index"`
	Language    string `json:"language,omitempty" gorm:"type:varchar(10)"`
	Href        string `json:"href,omitempty" validate:"omitempty,url" gorm:"type:varchar(1024)"`
}

// Validate checks required fields and values
func (a *Article) Validate() error {

	validate := validator.New()
	return validate.Struct(a)
}

// BeforeSave maintains the case-folded sort title, so that title ordering
// (and the pagination key built on it) is case insensitive.
func (a *Article) BeforeSave(tx *gorm.DB) error {
	a.SortTitle = cases.Fold().String(a.Title)
	return nil
}

// articles are sorted and paginated on (sort_title, uuid);
// uuid is unique, which makes the combination unique per row
func articlePaginator(req page.Request) *page.Paginator[Article, string, string] {
	return page.NewPaginator[Article, string, string](page.StringKey{}, page.StringKey{}).
		Keys("sort_title", "uuid").
		RetrieveKeys(func(a *Article) (string, string) {
			return a.SortTitle, a.UUID
		}).
		Request(req)
}

func (s articleStore) List(req page.Request) (*page.Response[Article], error) {
	return articlePaginator(req).Paginate(s.db.Model(&Article{}))
}

func (s articleStore) FindByAuthor(author string, req page.Request) (*page.Response[Article], error) {
	return articlePaginator(req).Paginate(s.db.Model(&Article{}).Where("author = ?", author))
}

func (s articleStore) Count() (int64, error) {
	var count int64
	return count, s.db.Model(Article{}).Count(&count).Error
}

func (s articleStore) Get(uuid string) (*Article, error) {
	var article Article
	return &article, s.db.Where("uuid = ?", uuid).First(&article).Error
}

func (s articleStore) Create(newArticle *Article) error {
	return s.db.Create(newArticle).Error
}

func (s articleStore) Update(changedArticle *Article) error {
	return s.db.Save(changedArticle).Error
}

func (s articleStore) Delete(deletedArticle *Article) error {
	return s.db.Delete(deletedArticle).Error
}
