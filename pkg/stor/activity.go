// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package stor

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edrlab/feed-server/pkg/page"
)

// Activity data model
// we don't include the full gorm model here, as no update nor soft deletion occurs on activities
type Activity struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"` // first pagination key of the feed
	UUID      string    `json:"uuid" validate:"required,uuid" gorm:"type:varchar(100);uniqueIndex"`
	ArticleID string    `json:"article_id" validate:"required,uuid" gorm:"type:varchar(100);index"` // implicit foreign key to the related article
	Article   Article   `json:"-" gorm:"references:UUID" validate:"-"`                              // the activity belongs to the article
	Actor     string    `json:"actor" validate:"required" gorm:"type:varchar(255);index"`
	Action    string    `json:"action" validate:"oneof=publish update unpublish comment share"`
}

// Validate checks required fields and values
func (e *Activity) Validate() error {

	validate := validator.New()
	return validate.Struct(e)
}

// the feed is sorted and paginated on (created_at, uuid);
// the uuid tie-break keeps same-instant activities unambiguous
func activityPaginator(req page.Request) *page.Paginator[Activity, time.Time, string] {
	return page.NewPaginator[Activity, time.Time, string](page.TimeKey{}, page.StringKey{}).
		Keys("created_at", "uuid").
		RetrieveKeys(func(e *Activity) (string, string) {
			return page.FormatTimeKey(e.CreatedAt), e.UUID
		}).
		Request(req)
}

func (s activityStore) List(req page.Request) (*page.Response[Activity], error) {
	return activityPaginator(req).Paginate(s.db.Model(&Activity{}))
}

func (s activityStore) FindByArticle(articleID string, req page.Request) (*page.Response[Activity], error) {
	return activityPaginator(req).Paginate(s.db.Model(&Activity{}).Where("article_id = ?", articleID))
}

func (s activityStore) FindByActor(actor string, req page.Request) (*page.Response[Activity], error) {
	return activityPaginator(req).Paginate(s.db.Model(&Activity{}).Where("actor = ?", actor))
}

func (s activityStore) Count() (int64, error) {
	var count int64
	return count, s.db.Model(Activity{}).Count(&count).Error
}

func (s activityStore) Get(uuid string) (*Activity, error) {
	var activity Activity
	return &activity, s.db.Where("uuid = ?", uuid).First(&activity).Error
}

func (s activityStore) Create(newActivity *Activity) error {
	return s.db.Create(newActivity).Error
}
