package stubserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fe-v2/internal/domain"
)

const (
	tokenTTL      = 24 * time.Hour
	maxUploadSize = 1024 * 1024
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// login issues a token for a known username. Development convenience only,
// no password check.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "无效的请求")
		return
	}

	user, ok := s.store.UserByName(req.Username)
	if !ok {
		writeError(w, http.StatusNotFound, ErrUserNotFound.Error())
		return
	}

	token, err := IssueToken(s.secret, user.ID, tokenTTL)
	if err != nil {
		s.log.WithError(err).Error("Failed to issue token")
		writeError(w, http.StatusInternalServerError, "登录失败")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) getUserProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.UserByID(userID(r))
	if !ok {
		writeError(w, http.StatusNotFound, ErrUserNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) getUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "无效的用户ID")
		return
	}

	user, ok := s.store.UserByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, ErrUserNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "无效的请求")
		return
	}

	profile, err := s.store.UpdateProfile(userID(r), update)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "个人资料更新成功",
		"profile": profile,
	})
}

func (s *Server) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize*2)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "无效的上传请求")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "缺少头像文件")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "读取头像文件失败")
		return
	}
	if len(data) > maxUploadSize {
		writeError(w, http.StatusBadRequest, "图片大小不能超过1MB")
		return
	}

	id := userID(r)
	avatarURL := "/static/avatars/user_" + strconv.Itoa(id) + ".png"
	if err := s.store.SetAvatar(id, avatarURL); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":  id,
		"filename": header.Filename,
		"size":     len(data),
	}).Info("Avatar uploaded")

	respondJSON(w, http.StatusOK, map[string]string{"avatar_url": avatarURL})
}

func (s *Server) getActivityParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "无效的活动ID")
		return
	}
	respondJSON(w, http.StatusOK, s.store.Participants(id))
}

func (s *Server) getActivityByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "无效的活动ID")
		return
	}

	activity, ok := s.store.ActivityByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, ErrActivityNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

func (s *Server) getCreatorActivities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.ActivitiesByCreator(userID(r)))
}

func (s *Server) applyActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID int `json:"activity_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActivityID == 0 {
		writeError(w, http.StatusBadRequest, "无效的请求")
		return
	}

	if _, err := s.store.Apply(req.ActivityID, userID(r)); err != nil {
		status := http.StatusBadRequest
		if err == ErrActivityNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "申请成功，等待审核"})
}

func (s *Server) getMyApplications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.MyApplications(userID(r)))
}

func (s *Server) getActivityApplications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.ReceivedApplications(userID(r)))
}

func (s *Server) getMyParticipations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Participations(userID(r)))
}

func (s *Server) updateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationID string                   `json:"application_id"`
		Status        domain.ApplicationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ApplicationID == "" {
		writeError(w, http.StatusBadRequest, "无效的请求")
		return
	}

	if err := s.store.UpdateApplicationStatus(userID(r), req.ApplicationID, req.Status); err != nil {
		status := http.StatusBadRequest
		switch err {
		case ErrApplicationNotFound, ErrActivityNotFound:
			status = http.StatusNotFound
		case ErrNotCreator:
			status = http.StatusForbidden
		}
		writeError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "处理成功"})
}
