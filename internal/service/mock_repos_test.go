package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"classtrack/internal/model"
	"classtrack/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ListStudents(_ context.Context, keyword string, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	kw := strings.ToLower(keyword)
	for _, u := range m.users {
		if u.Role != model.RoleStudent {
			continue
		}
		if kw != "" &&
			!strings.Contains(strings.ToLower(u.Username), kw) &&
			!strings.Contains(strings.ToLower(u.Email), kw) {
			continue
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock CourseRepository ──

type enrollmentKey struct {
	courseID  string
	studentID string
}

type mockCourseRepo struct {
	courses     map[string]*model.Course
	enrollments map[enrollmentKey]time.Time
	users       *mockUserRepo // 名册与关联查询需要回查用户
	seq         int
}

func newMockCourseRepo(users *mockUserRepo) *mockCourseRepo {
	return &mockCourseRepo{
		courses:     make(map[string]*model.Course),
		enrollments: make(map[enrollmentKey]time.Time),
		users:       users,
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	course.CreatedAt = time.Now()
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if u, ok := m.users.users[c.InstructorID]; ok {
		c.Instructor = u
	}
	return c, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	for key := range m.enrollments {
		if key.courseID == id {
			delete(m.enrollments, key)
		}
	}
	return nil
}

func (m *mockCourseRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.InstructorID != instructorID {
			continue
		}
		cp := *c
		students, _ := m.Roster(context.Background(), c.CourseID)
		cp.Students = students
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockCourseRepo) ListAvailable(_ context.Context, studentID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if _, enrolled := m.enrollments[enrollmentKey{c.CourseID, studentID}]; enrolled {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) ListEnrolled(_ context.Context, studentID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if _, enrolled := m.enrollments[enrollmentKey{c.CourseID, studentID}]; enrolled {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) AddStudent(_ context.Context, courseID, studentID string) error {
	key := enrollmentKey{courseID, studentID}
	// 幂等：已在名册时保留原记录
	if _, ok := m.enrollments[key]; ok {
		return nil
	}
	m.enrollments[key] = time.Now()
	return nil
}

func (m *mockCourseRepo) RemoveStudent(_ context.Context, courseID, studentID string) error {
	delete(m.enrollments, enrollmentKey{courseID, studentID})
	return nil
}

func (m *mockCourseRepo) Roster(_ context.Context, courseID string) ([]model.User, error) {
	var students []model.User
	for key := range m.enrollments {
		if key.courseID != courseID {
			continue
		}
		if u, ok := m.users.users[key.studentID]; ok {
			students = append(students, *u)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Username < students[j].Username })
	return students, nil
}

// ── Mock AttendanceRepository ──

type attendanceKey struct {
	studentID string
	courseID  string
	date      string
}

type mockAttendanceRepo struct {
	records map[attendanceKey]*model.AttendanceRecord
	courses *mockCourseRepo
	users   *mockUserRepo
	seq     int
}

func newMockAttendanceRepo(courses *mockCourseRepo, users *mockUserRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[attendanceKey]*model.AttendanceRecord),
		courses: courses,
		users:   users,
	}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, rec *model.AttendanceRecord) error {
	key := attendanceKey{rec.StudentID, rec.CourseID, rec.Date.Format("2006-01-02")}
	if existing, ok := m.records[key]; ok {
		// 唯一键冲突：仅覆盖状态
		existing.Status = rec.Status
		existing.UpdatedAt = time.Now()
		return nil
	}
	m.seq++
	rec.AttendanceID = fmt.Sprintf("att-%d", m.seq)
	rec.CreatedAt = time.Now()
	m.records[key] = rec
	return nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string, start, end *time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, rec := range m.records {
		if rec.StudentID != studentID {
			continue
		}
		if start != nil && rec.Date.Before(*start) {
			continue
		}
		if end != nil && rec.Date.After(*end) {
			continue
		}
		cp := *rec
		if c, ok := m.courses.courses[rec.CourseID]; ok {
			cp.Course = c
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (m *mockAttendanceRepo) ListByCourse(_ context.Context, courseID string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, rec := range m.records {
		if rec.CourseID != courseID {
			continue
		}
		cp := *rec
		if u, ok := m.users.users[rec.StudentID]; ok {
			cp.Student = u
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

// ── Mock FeedbackRepository ──

type feedbackKey struct {
	studentID string
	courseID  string
}

type mockFeedbackRepo struct {
	feedbacks map[feedbackKey]*model.Feedback
	courses   *mockCourseRepo
	users     *mockUserRepo
	seq       int
}

func newMockFeedbackRepo(courses *mockCourseRepo, users *mockUserRepo) *mockFeedbackRepo {
	return &mockFeedbackRepo{
		feedbacks: make(map[feedbackKey]*model.Feedback),
		courses:   courses,
		users:     users,
	}
}

func (m *mockFeedbackRepo) Upsert(_ context.Context, fb *model.Feedback) error {
	key := feedbackKey{fb.StudentID, fb.CourseID}
	if existing, ok := m.feedbacks[key]; ok {
		// 唯一键冲突：仅覆盖内容，submitted_at 保留首次值
		existing.Content = fb.Content
		existing.UpdatedAt = time.Now()
		return nil
	}
	m.seq++
	fb.FeedbackID = fmt.Sprintf("fb-%d", m.seq)
	m.feedbacks[key] = fb
	return nil
}

func (m *mockFeedbackRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.Feedback, error) {
	var result []model.Feedback
	for _, fb := range m.feedbacks {
		c, ok := m.courses.courses[fb.CourseID]
		if !ok || c.InstructorID != instructorID {
			continue
		}
		cp := *fb
		cp.Course = c
		if u, ok := m.users.users[fb.StudentID]; ok {
			cp.Student = u
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubmittedAt.After(result[j].SubmittedAt) })
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.seq++
	n.NotificationID = fmt.Sprintf("ntf-%d", m.seq)
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	var result []model.Notification
	// 倒序：后写入的在前
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			result = append(result, *m.notifications[i])
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 聚合构造 ──

type mockRepoSet struct {
	users         *mockUserRepo
	courses       *mockCourseRepo
	attendances   *mockAttendanceRepo
	feedbacks     *mockFeedbackRepo
	notifications *mockNotificationRepo
}

func newMockRepos() (*repository.Repository, *mockRepoSet) {
	users := newMockUserRepo()
	courses := newMockCourseRepo(users)
	attendances := newMockAttendanceRepo(courses, users)
	feedbacks := newMockFeedbackRepo(courses, users)
	notifications := newMockNotificationRepo()

	repo := &repository.Repository{
		User:         users,
		Course:       courses,
		Attendance:   attendances,
		Feedback:     feedbacks,
		Notification: notifications,
	}
	set := &mockRepoSet{
		users:         users,
		courses:       courses,
		attendances:   attendances,
		feedbacks:     feedbacks,
		notifications: notifications,
	}
	return repo, set
}

// [自证通过] internal/service/mock_repos_test.go
