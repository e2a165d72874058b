package implementation

import (
	"context"
	"errors"

	"ai-blogcms-be/internal/entity"
	"ai-blogcms-be/internal/mapper"
	"ai-blogcms-be/internal/model"
	"ai-blogcms-be/internal/repository/contract"
	"ai-blogcms-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogAuthorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BlogMapper
}

func NewBlogAuthorRepository(db *gorm.DB) contract.BlogAuthorRepository {
	return &BlogAuthorRepositoryImpl{
		db:     db,
		mapper: mapper.NewBlogMapper(),
	}
}

func (r *BlogAuthorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BlogAuthorRepositoryImpl) Create(ctx context.Context, author *entity.BlogAuthor) error {
	modelAuthor := r.mapper.AuthorToModel(author)
	if err := r.db.WithContext(ctx).Create(modelAuthor).Error; err != nil {
		return err
	}
	*author = *r.mapper.AuthorToEntity(modelAuthor)
	return nil
}

func (r *BlogAuthorRepositoryImpl) Update(ctx context.Context, author *entity.BlogAuthor) error {
	modelAuthor := r.mapper.AuthorToModel(author)
	if err := r.db.WithContext(ctx).Save(modelAuthor).Error; err != nil {
		return err
	}
	*author = *r.mapper.AuthorToEntity(modelAuthor)
	return nil
}

func (r *BlogAuthorRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogAuthor{}).Error
}

func (r *BlogAuthorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BlogAuthor, error) {
	var modelAuthor model.BlogAuthor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelAuthor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.AuthorToEntity(&modelAuthor), nil
}

func (r *BlogAuthorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BlogAuthor, error) {
	var modelAuthors []*model.BlogAuthor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelAuthors).Error; err != nil {
		return nil, err
	}

	return r.mapper.AuthorsToEntities(modelAuthors), nil
}

func (r *BlogAuthorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BlogAuthor{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
