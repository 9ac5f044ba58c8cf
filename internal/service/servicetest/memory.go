// Package servicetest 提供服务层接口的内存实现，供各包单元测试使用。
// 语义与 gorm 仓储保持一致：唯一索引、版本号乐观锁、事务回滚。
package servicetest

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
)

type txKey struct{}

type state struct {
	tests       map[string]model.Test
	attempts    map[string]model.TestAttempt
	users       map[uint]model.User
	courses     map[uint]model.Course
	enrollments map[uint]model.Enrollment
	nextID      uint
}

func (s *state) clone() *state {
	c := &state{
		tests:       make(map[string]model.Test, len(s.tests)),
		attempts:    make(map[string]model.TestAttempt, len(s.attempts)),
		users:       make(map[uint]model.User, len(s.users)),
		courses:     make(map[uint]model.Course, len(s.courses)),
		enrollments: make(map[uint]model.Enrollment, len(s.enrollments)),
		nextID:      s.nextID,
	}
	for k, v := range s.tests {
		c.tests[k] = cloneTest(v, true)
	}
	for k, v := range s.attempts {
		c.attempts[k] = cloneAttempt(v, true)
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.courses {
		c.courses[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	return c
}

// DB 内存数据库
type DB struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *state

	// StaleWrites 接下来 n 次 UpdateState 模拟被其他请求抢先修改
	StaleWrites int
	// FailWrites 非 nil 时所有写操作返回该错误
	FailWrites error
	// UpdateStateCalls 成功写入汇总的次数
	UpdateStateCalls int
	// StatisticsLocks 统计写入前锁定测验行的次数
	StatisticsLocks int
}

func NewDB() *DB {
	return &DB{data: &state{
		tests:       map[string]model.Test{},
		attempts:    map[string]model.TestAttempt{},
		users:       map[uint]model.User{},
		courses:     map[uint]model.Course{},
		enrollments: map[uint]model.Enrollment{},
	}}
}

// WithinTransaction 事务串行执行，出错时恢复快照
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	snapshot := db.data.clone()
	db.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		db.mu.Lock()
		db.data = snapshot
		db.mu.Unlock()
		return err
	}
	return nil
}

func (db *DB) id() uint {
	db.data.nextID++
	return db.data.nextID
}

func cloneTest(t model.Test, withQuestions bool) model.Test {
	c := t
	c.Questions = nil
	if withQuestions {
		for _, q := range t.Questions {
			qc := q
			qc.Options = append([]model.QuestionOption(nil), q.Options...)
			c.Questions = append(c.Questions, qc)
		}
	}
	return c
}

func cloneAttempt(a model.TestAttempt, withAnswers bool) model.TestAttempt {
	c := a
	c.Answers = nil
	if withAnswers {
		c.Answers = append([]model.AttemptAnswer(nil), a.Answers...)
	}
	results := a.Results.Data()
	byDifficulty := make(map[model.Difficulty]model.DifficultyResult, len(results.ByDifficulty))
	for k, v := range results.ByDifficulty {
		byDifficulty[k] = v
	}
	results.ByDifficulty = byDifficulty
	c.Results = datatypes.NewJSONType(results)
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// ---- TestStore ----

type Tests struct{ db *DB }

func (db *DB) Tests() *Tests { return &Tests{db: db} }

func (r *Tests) Create(ctx context.Context, test *model.Test) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	test.EnsureID()
	if err := r.checkQuestionIDs(test.ID, test.Questions); err != nil {
		return err
	}
	now := time.Now()
	test.CreatedAt, test.UpdatedAt = now, now
	for i := range test.Questions {
		test.Questions[i].EnsureID()
		test.Questions[i].TestID = test.ID
	}
	r.db.data.tests[test.ID] = cloneTest(*test, true)
	return nil
}

// checkQuestionIDs 模拟 test_questions 主键：题目 ID 全局唯一
func (r *Tests) checkQuestionIDs(testID string, questions []model.TestQuestion) error {
	for id, t := range r.db.data.tests {
		if id == testID {
			continue
		}
		for _, owned := range t.Questions {
			for _, q := range questions {
				if q.ID != "" && q.ID == owned.ID {
					return util.ErrQuestionIDTaken
				}
			}
		}
	}
	return nil
}

func (r *Tests) FindByID(ctx context.Context, id string) (*model.Test, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.data.tests[id]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	c := cloneTest(t, true)
	sort.SliceStable(c.Questions, func(i, j int) bool { return c.Questions[i].Order < c.Questions[j].Order })
	return &c, nil
}

func (r *Tests) ListByCourse(ctx context.Context, courseID uint, publishedOnly bool) ([]model.Test, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var tests []model.Test
	for _, t := range r.db.data.tests {
		if t.CourseID != courseID {
			continue
		}
		if publishedOnly && (!t.IsPublished || !t.IsActive) {
			continue
		}
		tests = append(tests, cloneTest(t, false))
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].CreatedAt.After(tests[j].CreatedAt) })
	return tests, nil
}

func (r *Tests) Update(ctx context.Context, test *model.Test) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	stored, ok := r.db.data.tests[test.ID]
	if !ok {
		return util.ErrTestNotFound
	}
	updated := cloneTest(*test, false)
	updated.Questions = stored.Questions
	updated.TestStatistics = stored.TestStatistics
	updated.CourseID = stored.CourseID
	updated.InstructorID = stored.InstructorID
	updated.UpdatedAt = time.Now()
	r.db.data.tests[test.ID] = updated
	return nil
}

func (r *Tests) ReplaceQuestions(ctx context.Context, testID string, questions []model.TestQuestion) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	stored, ok := r.db.data.tests[testID]
	if !ok {
		return util.ErrTestNotFound
	}
	if err := r.checkQuestionIDs(testID, questions); err != nil {
		return err
	}
	for i := range questions {
		questions[i].EnsureID()
		questions[i].TestID = testID
	}
	stored.Questions = questions
	r.db.data.tests[testID] = cloneTest(stored, true)
	return nil
}

// LockForStatistics 事务本身已串行执行，这里只计数
func (r *Tests) LockForStatistics(ctx context.Context, id string) (*model.Test, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.data.tests[id]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	r.db.StatisticsLocks++
	c := cloneTest(t, false)
	return &c, nil
}

func (r *Tests) UpdateStatistics(ctx context.Context, testID string, stats model.TestStatistics) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	stored, ok := r.db.data.tests[testID]
	if !ok {
		return nil
	}
	stored.TestStatistics = stats
	r.db.data.tests[testID] = stored
	return nil
}

func (r *Tests) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.data.tests[id]; !ok {
		return util.ErrTestNotFound
	}
	delete(r.db.data.tests, id)
	return nil
}

// ---- AttemptStore ----

type Attempts struct{ db *DB }

func (db *DB) Attempts() *Attempts { return &Attempts{db: db} }

// Create 模拟 (student_id, test_id, attempt_number) 唯一索引
func (r *Attempts) Create(ctx context.Context, attempt *model.TestAttempt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	for _, a := range r.db.data.attempts {
		if a.StudentID == attempt.StudentID && a.TestID == attempt.TestID && a.AttemptNumber == attempt.AttemptNumber {
			return util.ErrConcurrentAttempt
		}
	}
	attempt.EnsureID()
	if attempt.Version == 0 {
		attempt.Version = 1
	}
	now := time.Now()
	attempt.CreatedAt, attempt.UpdatedAt = now, now
	r.db.data.attempts[attempt.ID] = cloneAttempt(*attempt, false)
	return nil
}

func (r *Attempts) FindByID(ctx context.Context, id string) (*model.TestAttempt, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.data.attempts[id]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	c := cloneAttempt(a, true)
	sort.SliceStable(c.Answers, func(i, j int) bool { return c.Answers[i].AnsweredAt.Before(c.Answers[j].AnsweredAt) })
	return &c, nil
}

func (r *Attempts) list(match func(a model.TestAttempt) bool, less func(a, b model.TestAttempt) bool) []model.TestAttempt {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.db.data.attempts {
		if match(a) {
			out = append(out, cloneAttempt(a, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *Attempts) ListByStudentAndTest(ctx context.Context, studentID uint, testID string) ([]model.TestAttempt, error) {
	return r.list(
		func(a model.TestAttempt) bool { return a.StudentID == studentID && a.TestID == testID },
		func(a, b model.TestAttempt) bool { return a.AttemptNumber < b.AttemptNumber },
	), nil
}

func (r *Attempts) ListByTest(ctx context.Context, testID string) ([]model.TestAttempt, error) {
	return r.list(
		func(a model.TestAttempt) bool { return a.TestID == testID },
		func(a, b model.TestAttempt) bool {
			if a.StudentID != b.StudentID {
				return a.StudentID < b.StudentID
			}
			return a.AttemptNumber < b.AttemptNumber
		},
	), nil
}

func (r *Attempts) ListByTestLocked(ctx context.Context, testID string) ([]model.TestAttempt, error) {
	return r.ListByTest(ctx, testID)
}

func (r *Attempts) ListInProgress(ctx context.Context, startedBefore time.Time) ([]model.TestAttempt, error) {
	return r.list(
		func(a model.TestAttempt) bool {
			return a.Status == model.AttemptInProgress && a.StartedAt.Before(startedBefore)
		},
		func(a, b model.TestAttempt) bool { return a.StartedAt.Before(b.StartedAt) },
	), nil
}

func (r *Attempts) CountByTest(ctx context.Context, testID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, a := range r.db.data.attempts {
		if a.TestID == testID {
			n++
		}
	}
	return n, nil
}

// SaveAnswer 模拟 (attempt_id, question_id) 上的 upsert
func (r *Attempts) SaveAnswer(ctx context.Context, attempt *model.TestAttempt, answer *model.AttemptAnswer) error {
	r.db.mu.Lock()
	if r.db.FailWrites != nil {
		r.db.mu.Unlock()
		return r.db.FailWrites
	}
	stored, ok := r.db.data.attempts[attempt.ID]
	if !ok {
		r.db.mu.Unlock()
		return util.ErrAttemptNotFound
	}
	answer.EnsureID()
	answers := append([]model.AttemptAnswer(nil), stored.Answers...)
	replaced := false
	for i := range answers {
		if answers[i].QuestionID == answer.QuestionID {
			id := answers[i].ID
			answers[i] = *answer
			answers[i].ID = id
			replaced = true
		}
	}
	if !replaced {
		answers = append(answers, *answer)
	}
	stored.Answers = answers
	r.db.data.attempts[attempt.ID] = stored
	r.db.mu.Unlock()

	return r.UpdateState(ctx, attempt)
}

// UpdateState 版本号不一致时返回 ErrStaleAttempt
func (r *Attempts) UpdateState(ctx context.Context, attempt *model.TestAttempt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	stored, ok := r.db.data.attempts[attempt.ID]
	if !ok || stored.Version != attempt.Version {
		return util.ErrStaleAttempt
	}
	if r.db.StaleWrites > 0 {
		r.db.StaleWrites--
		return util.ErrStaleAttempt
	}

	answers := stored.Answers
	stored = cloneAttempt(*attempt, false)
	stored.Answers = answers
	stored.Version = attempt.Version + 1
	stored.UpdatedAt = time.Now()
	r.db.data.attempts[attempt.ID] = stored
	attempt.Version++
	r.db.UpdateStateCalls++
	return nil
}

// BumpVersion 模拟其他请求修改了答题记录
func (db *DB) BumpVersion(attemptID string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	a := db.data.attempts[attemptID]
	a.Version++
	db.data.attempts[attemptID] = a
}

// ---- UserStore ----

type Users struct{ db *DB }

func (db *DB) Users() *Users { return &Users{db: db} }

func (r *Users) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	for _, u := range r.db.data.users {
		if strings.EqualFold(u.Email, user.Email) {
			return util.ErrEmailRegistered
		}
	}
	user.ID = r.db.id()
	r.db.data.users[user.ID] = *user
	return nil
}

func (r *Users) FindByID(ctx context.Context, id uint) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.data.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &u, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.data.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *Users) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.data.users[id]
	if !ok {
		return util.ErrUserNotFound
	}
	u.LastLogin = &at
	r.db.data.users[id] = u
	return nil
}

// ---- CourseStore ----

type Courses struct{ db *DB }

func (db *DB) Courses() *Courses { return &Courses{db: db} }

func (r *Courses) CreateCourse(ctx context.Context, course *model.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	course.ID = r.db.id()
	r.db.data.courses[course.ID] = *course
	return nil
}

func (r *Courses) FindCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.data.courses[id]
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	return &c, nil
}

func (r *Courses) ListCourses(ctx context.Context, instructorID uint) ([]model.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Course
	for _, c := range r.db.data.courses {
		if instructorID == 0 || c.InstructorID == instructorID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Courses) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailWrites != nil {
		return r.db.FailWrites
	}
	for _, e := range r.db.data.enrollments {
		if e.CourseID == enrollment.CourseID && e.StudentID == enrollment.StudentID {
			return util.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = r.db.id()
	r.db.data.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (r *Courses) FindEnrollment(ctx context.Context, courseID, studentID uint) (*model.Enrollment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range r.db.data.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			c := e
			return &c, nil
		}
	}
	return nil, nil
}

func (r *Courses) UpdateEnrollmentStatus(ctx context.Context, id uint, status model.EnrollmentStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.data.enrollments[id]
	if !ok {
		return nil
	}
	e.Status = status
	r.db.data.enrollments[id] = e
	return nil
}

// ---- TestCache ----

// Cache 记录命中情况的内存缓存
type Cache struct {
	mu          sync.Mutex
	items       map[string]model.Test
	Hits        int
	Invalidated []string
}

func NewCache() *Cache {
	return &Cache{items: map[string]model.Test{}}
}

func (c *Cache) Get(ctx context.Context, id string) (*model.Test, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.items[id]
	if !ok {
		return nil, false
	}
	c.Hits++
	clone := cloneTest(t, true)
	return &clone, true
}

func (c *Cache) Set(ctx context.Context, test *model.Test) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[test.ID] = cloneTest(*test, true)
}

func (c *Cache) Invalidate(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.Invalidated = append(c.Invalidated, id)
}
