package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

// ClassroomGateway reads courses and course work on behalf of a student using
// the access token the client obtained from Google.
type ClassroomGateway struct {
	concurrency int
	opts        []option.ClientOption
}

// NewClassroomGateway takes extra client options that are applied after the
// per-request token source.
func NewClassroomGateway(concurrency int, opts ...option.ClientOption) *ClassroomGateway {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ClassroomGateway{concurrency: concurrency, opts: opts}
}

func (g *ClassroomGateway) service(ctx context.Context, accessToken string) (*classroom.Service, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}
	opts = append(opts, g.opts...)

	svc, err := classroom.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassroomUnavailable, err)
	}
	return svc, nil
}

func listStudentCourses(ctx context.Context, svc *classroom.Service) ([]*classroom.Course, error) {
	var courses []*classroom.Course
	err := svc.Courses.List().StudentId("me").Pages(ctx, func(page *classroom.ListCoursesResponse) error {
		courses = append(courses, page.Courses...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list courses: %v", ErrClassroomUnavailable, err)
	}
	return courses, nil
}

func (g *ClassroomGateway) Courses(ctx context.Context, accessToken string) ([]models.ClassroomCourse, error) {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	courses, err := listStudentCourses(ctx, svc)
	if err != nil {
		return nil, err
	}

	out := make([]models.ClassroomCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, models.ClassroomCourse{
			ID:      c.Id,
			Name:    c.Name,
			Section: c.Section,
			Room:    c.Room,
			Link:    c.AlternateLink,
		})
	}
	return out, nil
}

// Assignments returns every dated course work item across the student's
// courses, soonest first. Any failure fails the whole call.
func (g *ClassroomGateway) Assignments(ctx context.Context, accessToken string) ([]models.ClassroomAssignment, error) {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	courses, err := listStudentCourses(ctx, svc)
	if err != nil {
		return nil, err
	}

	perCourse := make([][]models.ClassroomAssignment, len(courses))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, course := range courses {
		eg.Go(func() error {
			items, err := listCourseAssignments(egCtx, svc, course)
			if err != nil {
				return err
			}
			perCourse[i] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	assignments := make([]models.ClassroomAssignment, 0)
	for _, items := range perCourse {
		assignments = append(assignments, items...)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].DueDate.Before(assignments[j].DueDate)
	})
	return assignments, nil
}

func listCourseAssignments(ctx context.Context, svc *classroom.Service, course *classroom.Course) ([]models.ClassroomAssignment, error) {
	var items []models.ClassroomAssignment
	err := svc.Courses.CourseWork.List(course.Id).Pages(ctx, func(page *classroom.ListCourseWorkResponse) error {
		for _, work := range page.CourseWork {
			if work.DueDate == nil {
				continue
			}
			items = append(items, models.ClassroomAssignment{
				ID:          work.Id,
				Title:       work.Title,
				Description: work.Description,
				DueDate:     dueDate(work.DueDate),
				CourseName:  course.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list course work for %s: %v", ErrClassroomUnavailable, course.Id, err)
	}
	return items, nil
}

func dueDate(d *classroom.Date) time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
}
