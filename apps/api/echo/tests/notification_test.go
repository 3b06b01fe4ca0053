package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hekima/shule/core/notification"
	"github.com/hekima/shule/core/user"
	"github.com/hekima/shule/services/email"
)

func Test_notificationApi_create(t *testing.T) {
	resetDB(t)

	student := createUser(t, "Hero Mukeba", "hero", "hero@shule.cd", "LolC@t123", user.RoleStudent)
	teacher := createUser(t, "Awesome Teach", "teach", "teach@shule.cd", "LolC@t123", user.RoleTeacher)
	teacherToken := getToken(t, teacher)

	reqMsg := "this field is required"
	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Students cannot notify", token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "required fields", token: teacherToken, wantCode: http.StatusBadRequest,
			body: marchallObj(t, notification.NewNotification{}),
			wantData: marchallObj(t, httpErr{Message: "Invalid request data", Fields: map[string]string{
				"userId": reqMsg, "message": reqMsg,
			}}),
		},
		{
			name: "notification created", token: teacherToken, wantCode: http.StatusCreated,
			body: marchallObj(t, notification.NewNotification{UserID: student.ID, Message: "Class moved to room B2"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/notifications"

		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ResetSentMessages()

			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var notif notification.Notification
				if err := json.Unmarshal(rec.Body.Bytes(), &notif); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if notif.ID == 0 {
					t.Error("failed! notification has no id")
				}
				if notif.Read {
					t.Error("failed! new notification must be unread")
				}
				// mirrored to the recipient's email
				if len(emailsvc.SentMessages) != 1 {
					t.Fatalf("failed! len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
				}
				if to := emailsvc.SentMessages[0].To[0].Address; to != student.Email {
					t.Errorf("failed! To = %v; want %v", to, student.Email)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_notificationApi_listOwn(t *testing.T) {
	resetDB(t)

	student1 := createUser(t, "Hero Mukeba", "hero", "hero@shule.cd", "LolC@t123", user.RoleStudent)
	student2 := createUser(t, "King Awe", "king", "king@shule.cd", "LolC@t123", user.RoleStudent)

	n1, err := notifSvc.Create(notification.NewNotification{UserID: student1.ID, Message: "first"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	n2, err := notifSvc.Create(notification.NewNotification{UserID: student1.ID, Message: "second"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if _, err = notifSvc.Create(notification.NewNotification{UserID: student2.ID, Message: "other"}); err != nil {
		t.Fatalf("Create(): %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Own notifications in order", token: getToken(t, student1), wantCode: http.StatusOK, wantData: marchallList(t, n1, n2)},
		{
			name: "No notifications is an empty list", wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...),
			token: getToken(t, createUser(t, "New Kid", "newkid", "newkid@shule.cd", "LolC@t123", user.RoleStudent)),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/notifications"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_notificationApi_markRead(t *testing.T) {
	resetDB(t)

	student := createUser(t, "Hero Mukeba", "hero", "hero@shule.cd", "LolC@t123", user.RoleStudent)
	studentToken := getToken(t, student)

	notif, err := notifSvc.Create(notification.NewNotification{UserID: student.ID, Message: "read me"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	markRead := func(id interface{}) *http.Response {
		req, rec := newAuthRequest(http.MethodPost, fmt.Sprintf("/api/notifications/%v/read", id), studentToken)
		app.ServeHTTP(rec, req)
		return rec.Result()
	}

	// first read
	if resp := markRead(notif.ID); resp.StatusCode != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", resp.StatusCode, http.StatusOK)
	}
	listed, err := notifSvc.ListForUser(student.ID)
	if err != nil {
		t.Fatalf("ListForUser(): %v", err)
	}
	if len(listed) != 1 || !listed[0].Read {
		t.Errorf("failed! notification not marked read: %+v", listed)
	}

	// marking again and marking an unknown id are no-ops
	if resp := markRead(notif.ID); resp.StatusCode != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", resp.StatusCode, http.StatusOK)
	}
	if resp := markRead(999); resp.StatusCode != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", resp.StatusCode, http.StatusOK)
	}

	// non-numeric id
	if resp := markRead("lol"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("failed! code = %v; wantCode %v", resp.StatusCode, http.StatusBadRequest)
	}
}
