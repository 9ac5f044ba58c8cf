package repository

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc, created_at asc")
}

// Create 连同题目一起写入。题目单独插入：gorm 保存关联时遇到已存在的主键只会改写外键，
// 会把其他测验的题目挂到本测验下
func (r *TestRepository) Create(ctx context.Context, test *model.Test) error {
	return conn(ctx, r.DB).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Create(test).Error; err != nil {
			return translate(err, nil, nil)
		}
		return insertQuestions(tx, test.ID, test.Questions)
	})
}

func insertQuestions(db *gorm.DB, testID string, questions []model.TestQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].TestID = testID
	}
	return translate(db.Create(&questions).Error, nil, util.ErrQuestionIDTaken)
}

func (r *TestRepository) FindByID(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := conn(ctx, r.DB).
		Preload("Questions", orderedQuestions).
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, util.ErrTestNotFound, nil)
	}
	return &test, nil
}

func (r *TestRepository) ListByCourse(ctx context.Context, courseID uint, publishedOnly bool) ([]model.Test, error) {
	var tests []model.Test
	query := conn(ctx, r.DB).Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("is_published = ? AND is_active = ?", true, true)
	}
	err := query.Order("created_at desc").Find(&tests).Error
	return tests, translate(err, nil, nil)
}

// Update 只更新内容与设置，统计字段与题目另行维护
func (r *TestRepository) Update(ctx context.Context, test *model.Test) error {
	err := conn(ctx, r.DB).
		Omit("Questions", "TotalAttempts", "AverageScore", "PassRate", "InstructorID", "CourseID").
		Save(test).Error
	return translate(err, nil, nil)
}

func (r *TestRepository) ReplaceQuestions(ctx context.Context, testID string, questions []model.TestQuestion) error {
	db := conn(ctx, r.DB)
	if err := db.Unscoped().Where("test_id = ?", testID).Delete(&model.TestQuestion{}).Error; err != nil {
		return translate(err, nil, nil)
	}
	return insertQuestions(db, testID, questions)
}

// LockForStatistics SELECT ... FOR UPDATE，需在事务中调用
func (r *TestRepository) LockForStatistics(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := conn(ctx, r.DB).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, util.ErrTestNotFound, nil)
	}
	return &test, nil
}

// UpdateStatistics 统计字段的唯一写入口
func (r *TestRepository) UpdateStatistics(ctx context.Context, testID string, stats model.TestStatistics) error {
	err := conn(ctx, r.DB).Model(&model.Test{}).
		Where("id = ?", testID).
		Updates(map[string]interface{}{
			"total_attempts": stats.TotalAttempts,
			"average_score":  stats.AverageScore,
			"pass_rate":      stats.PassRate,
		}).Error
	return translate(err, nil, nil)
}

func (r *TestRepository) Delete(ctx context.Context, id string) error {
	db := conn(ctx, r.DB)
	if err := db.Where("test_id = ?", id).Delete(&model.TestQuestion{}).Error; err != nil {
		return translate(err, nil, nil)
	}
	res := db.Delete(&model.Test{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, nil, nil)
	}
	if res.RowsAffected == 0 {
		return util.ErrTestNotFound
	}
	return nil
}
