package usecase

import (
	"time"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// testIssue returns TES-3 with three attachments.
func testIssue() *domain.Issue {
	return &domain.Issue{
		Key:     "TES-3",
		Summary: "Screenshots",
		Attachments: []domain.Attachment{
			{ID: "100", Filename: "alps.jpg", Author: "Bob", Size: 300, Created: testNow.Add(-3 * time.Hour)},
			{ID: "101", Filename: "notes.txt", Author: "alice", Size: 100, Created: testNow.Add(-1 * time.Hour)},
			{ID: "102", Filename: "scan.pdf", Author: "Carol", Size: 200, Created: testNow.Add(-2 * time.Hour)},
		},
	}
}

// loggedIn returns a session logged in to a tracker holding testIssue.
func loggedIn() (*domain.Session, *testutil.MockTracker) {
	tracker := testutil.NewMockTracker()
	tracker.AddIssue(testIssue(), "jpeg", "text", "pdf")
	session := domain.NewSession()
	session.Set(tracker, tracker.User, domain.Profile{Server: "https://jira.example.com", Username: "alice"})
	return session, tracker
}

// newSet returns a rename set over testIssue without blobs.
func newSet() *domain.RenameSet {
	return domain.NewRenameSet(testIssue(), nil)
}
