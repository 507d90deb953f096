package domain

import "time"

// Chart описывает отрисованный график цен, который хранится в S3
type Chart struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Data        []byte
	Size        int64
	ContentType string
}

func NewChart(id string, bucket string, objectKey string, data []byte, contentType string) *Chart {
	return &Chart{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		Size:        int64(len(data)),
		ContentType: contentType,
	}
}

// SharedChart — ссылка на сохранённый график
type SharedChart struct {
	ObjectKey string
	URL       string
	ExpiresAt time.Time
}
