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

type BlogPostRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BlogMapper
}

func NewBlogPostRepository(db *gorm.DB) contract.BlogPostRepository {
	return &BlogPostRepositoryImpl{
		db:     db,
		mapper: mapper.NewBlogMapper(),
	}
}

func (r *BlogPostRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BlogPostRepositoryImpl) Create(ctx context.Context, post *entity.BlogPost) error {
	modelPost := r.mapper.PostToModel(post)
	if err := r.db.WithContext(ctx).Create(modelPost).Error; err != nil {
		return err
	}
	*post = *r.mapper.PostToEntity(modelPost)
	return nil
}

func (r *BlogPostRepositoryImpl) Update(ctx context.Context, post *entity.BlogPost) error {
	modelPost := r.mapper.PostToModel(post)
	if err := r.db.WithContext(ctx).Save(modelPost).Error; err != nil {
		return err
	}
	*post = *r.mapper.PostToEntity(modelPost)
	return nil
}

func (r *BlogPostRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogPost{}).Error
}

func (r *BlogPostRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BlogPost, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *BlogPostRepositoryImpl) FindOneWithAuthor(ctx context.Context, specs ...specification.Specification) (*entity.BlogPost, error) {
	return r.findOne(r.db.WithContext(ctx).Preload("Author"), specs...)
}

func (r *BlogPostRepositoryImpl) findOne(db *gorm.DB, specs ...specification.Specification) (*entity.BlogPost, error) {
	var modelPost model.BlogPost
	query := r.applySpecifications(db, specs...)

	if err := query.First(&modelPost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PostToEntity(&modelPost), nil
}

func (r *BlogPostRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BlogPost, error) {
	return r.findAll(r.db.WithContext(ctx), specs...)
}

func (r *BlogPostRepositoryImpl) FindAllWithAuthor(ctx context.Context, specs ...specification.Specification) ([]*entity.BlogPost, error) {
	return r.findAll(r.db.WithContext(ctx).Preload("Author"), specs...)
}

func (r *BlogPostRepositoryImpl) findAll(db *gorm.DB, specs ...specification.Specification) ([]*entity.BlogPost, error) {
	var modelPosts []*model.BlogPost
	query := r.applySpecifications(db, specs...)

	if err := query.Find(&modelPosts).Error; err != nil {
		return nil, err
	}

	return r.mapper.PostsToEntities(modelPosts), nil
}

func (r *BlogPostRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BlogPost{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BlogPostRepositoryImpl) SlugExists(ctx context.Context, slug string, excludeId uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("slug = ?", slug)
	if excludeId != uuid.Nil {
		query = query.Where("id <> ?", excludeId)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
