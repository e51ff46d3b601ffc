package http

import (
	"errors"
	"net/http"

	"github.com/bluegyufordev/matzip-server/internal/adapter"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/service"
	"github.com/bluegyufordev/matzip-server/internal/store"
	"github.com/bluegyufordev/matzip-server/internal/utils"
	"github.com/bluegyufordev/matzip-server/models"
)

// Client-facing messages. They are the external API contract and must not
// be reworded.
const (
	msgSuccess             = "요청 처리 성공"
	msgSignUpSuccess       = "회원가입 성공"
	msgOAuthSignUpSuccess  = "OAuth 회원가입 성공"
	msgSignOutSuccess      = "로그아웃 성공"
	msgFindIDSuccess       = "아이디 조회 성공"
	msgPasswordChanged     = "비밀번호 변경 성공"
	msgVerificationSent    = "이메일 인증 코드 전송 성공"
	msgInvalidInput        = "입력값 확인 필요"
	msgAccountNotFound     = "계정 없음"
	msgEmailTaken          = "이미 회원가입에 사용된 이메일입니다."
	msgWrongCode           = "잘못된 인증번호입니다."
	msgNoCodeSent          = "인증번호 전송내역 없음"
	msgDuplicateLoginID    = "중복 아이디 회원 있음"
	msgDuplicateNickname   = "중복 닉네임 회원 있음"
	msgDuplicateEmail      = "중복 이메일 회원 있음"
	msgKakaoAuthFailed     = "카카오 인증 실패"
	msgKakaoNotConfigured  = "카카오 설정 정보가 없습니다."
	msgKakaoEmailMissing   = "카카오에서 이메일 정보를 제공하지 않았습니다."
	msgInternalServerError = "요청 처리 중 오류 발생"

	msgLoginRequired           = "로그인 필요"
	msgNoVerificationRequest   = "이메일 인증 요청 내역 없음"
	msgEmailVerificationNeeded = "이메일 인증 필요"
	msgKakaoAuthNeeded         = "카카오 인증 필요"
	msgNoResetRequest          = "비밀번호 재설정 요청 내역 없음"

	msgTokenExpired     = "토큰 만료"
	msgTokenInvalid     = "유효하지 않은 토큰"
	msgTokenDecodeError = "토큰 디코딩 중 오류 발생"
)

// errorResponse pairs an HTTP status with the JSON envelope it carries.
type errorResponse struct {
	status int
	body   models.Response
}

var errorResponseMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:    {http.StatusBadRequest, models.Response{Message: msgInvalidInput}},
	service.ErrAccountNotFound:        {http.StatusNotFound, models.Response{Message: msgAccountNotFound}},
	service.ErrEmailAlreadyRegistered: {http.StatusConflict, models.Response{Message: msgEmailTaken}},
	service.ErrCodeNotSent:            {http.StatusNotFound, models.Response{Message: msgNoCodeSent}},
	service.ErrWrongCode:              {http.StatusBadRequest, models.Response{Message: msgWrongCode}},
	service.ErrEmailNotProvided:       {http.StatusForbidden, models.Response{Message: msgKakaoEmailMissing}},

	store.ErrDuplicateLoginID:  {http.StatusConflict, models.Response{Message: msgDuplicateLoginID, Target: "id"}},
	store.ErrDuplicateNickname: {http.StatusConflict, models.Response{Message: msgDuplicateNickname, Target: "nickname"}},
	store.ErrDuplicateEmail:    {http.StatusConflict, models.Response{Message: msgDuplicateEmail, Target: "email"}},
	store.ErrOAuthLinkNotFound: {http.StatusUnauthorized, models.Response{Message: msgKakaoAuthNeeded}},

	adapter.ErrNotConfigured: {http.StatusInternalServerError, models.Response{Message: msgKakaoNotConfigured}},
	adapter.ErrAuthFailed:    {http.StatusBadRequest, models.Response{Message: msgKakaoAuthFailed}},
}

// respondError translates a service/store error to its transport response.
// Unknown errors answer a generic 500 — internals never leak to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	for target, resp := range errorResponseMap {
		if errors.Is(err, target) {
			log.Warn().Err(err).Int("status", resp.status).Msg("request rejected")
			utils.WriteJSON(w, resp.body, resp.status) //nolint:errcheck
			return
		}
	}

	log.Err(err).Msg("unexpected error while handling request")
	writeMessage(w, http.StatusInternalServerError, msgInternalServerError)
}

// writeMessage writes a bare {message} envelope with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, models.Response{Message: message}, status) //nolint:errcheck
}

// writeMissingField writes the 400 validation envelope naming the first
// missing request field.
func writeMissingField(w http.ResponseWriter, target string) {
	utils.WriteJSON(w, models.Response{Message: msgInvalidInput, Target: target}, http.StatusBadRequest) //nolint:errcheck
}
