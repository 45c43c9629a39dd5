package store

import (
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormConversionStor struct {
	db *gorm.DB
}

func NewGormConversionStor(db *gorm.DB) *GormConversionStor {
	return &GormConversionStor{db: db}
}

func (s *GormConversionStor) GetConversionByDigest(digest string) (*Conversion, error) {
	var c Conversion
	err := s.db.Where("digest = ?", digest).First(&c).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &c, nil
}

// AddConversion stores c. A conversion with the same digest already in the store
// wins and is returned instead.
func (s *GormConversionStor) AddConversion(c *Conversion) (*Conversion, error) {
	var err error

	if c.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "digest"}},
			DoNothing: true,
		}).Create(c).Error
	})
	if err != nil {
		return nil, errors.Wrapf(err, "storing conversion %s", c.Digest)
	}

	return s.GetConversionByDigest(c.Digest)
}

func (s *GormConversionStor) CountConversions() (int64, error) {
	var count int64
	err := s.db.Model(&Conversion{}).Count(&count).Error
	return count, err
}
