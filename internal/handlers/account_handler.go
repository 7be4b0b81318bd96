package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/httpresp"
	ucAccount "github.com/BruksfildServices01/glamconnect/internal/usecase/account"
)

type AccountHandler struct {
	register   *ucAccount.Register
	verify     *ucAccount.VerifyEmail
	login      *ucAccount.Login
	adminLogin *ucAccount.AdminLogin
	reqReset   *ucAccount.RequestPasswordReset
	reset      *ucAccount.ResetPassword
	getUser    *ucAccount.GetUserByEmail
	external   *ucAccount.ExternalIdentity
	log        *zap.Logger
}

func NewAccountHandler(
	register *ucAccount.Register,
	verify *ucAccount.VerifyEmail,
	login *ucAccount.Login,
	adminLogin *ucAccount.AdminLogin,
	reqReset *ucAccount.RequestPasswordReset,
	reset *ucAccount.ResetPassword,
	getUser *ucAccount.GetUserByEmail,
	external *ucAccount.ExternalIdentity,
	log *zap.Logger,
) *AccountHandler {
	return &AccountHandler{
		register:   register,
		verify:     verify,
		login:      login,
		adminLogin: adminLogin,
		reqReset:   reqReset,
		reset:      reset,
		getUser:    getUser,
		external:   external,
		log:        log.Named("account"),
	}
}

func (h *AccountHandler) Routes(d *Dispatcher) {
	d.Register("signup", AccessPublic, h.Signup)
	d.Register("verifyEmail", AccessPublic, h.VerifyEmail)
	d.AllowQuery("verifyEmail")
	d.Register("login", AccessPublic, h.Login)
	d.Register("adminLogin", AccessPublic, h.AdminLogin)
	d.Register("requestPasswordReset", AccessPublic, h.RequestPasswordReset)
	d.Register("resetPassword", AccessPublic, h.ResetPassword)
	d.Register("getUserByEmail", AccessPublic, h.GetUserByEmail)
	d.Register("verifyFirebaseToken", AccessPublic, h.VerifyFirebaseToken)
	d.Register("applyOobCode", AccessPublic, h.ApplyOobCode)
}

// --------- Requests ---------

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type firebaseTokenRequest struct {
	IDToken string `json:"idToken"`
	APIKey  string `json:"apiKey"`
}

type oobCodeRequest struct {
	OobCode string `json:"oobCode"`
	APIKey  string `json:"apiKey"`
}

// --------- Handlers ---------

func (h *AccountHandler) Signup(c *gin.Context, req *Request) {
	var in signupRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Contact:  in.Contact,
		Password: in.Password,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Signup successful. Please verify your email before logging in.", gin.H{
		"user":         out.User,
		"verification": out.Verification,
	})
}

func (h *AccountHandler) VerifyEmail(c *gin.Context, req *Request) {
	var in tokenRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.verify.Execute(c.Request.Context(), in.Token); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Email verified. You may now login.", nil)
}

func (h *AccountHandler) Login(c *gin.Context, req *Request) {
	var in credentialsRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.login.Execute(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Login successful", gin.H{
		"token": out.Token,
		"user":  out.User,
	})
}

func (h *AccountHandler) AdminLogin(c *gin.Context, req *Request) {
	var in credentialsRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.adminLogin.Execute(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Login successful", gin.H{
		"token": out.Token,
		"user":  out.User,
	})
}

func (h *AccountHandler) RequestPasswordReset(c *gin.Context, req *Request) {
	var in emailRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.reqReset.Execute(c.Request.Context(), in.Email)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Password reset requested", gin.H{"reset": out})
}

func (h *AccountHandler) ResetPassword(c *gin.Context, req *Request) {
	var in resetPasswordRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	err := h.reset.Execute(c.Request.Context(), ucAccount.ResetPasswordInput{
		Email:       in.Email,
		Token:       in.Token,
		NewPassword: in.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Password reset successful", nil)
}

func (h *AccountHandler) GetUserByEmail(c *gin.Context, req *Request) {
	var in emailRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.getUser.Execute(c.Request.Context(), in.Email)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "", gin.H{"user": user})
}

func (h *AccountHandler) VerifyFirebaseToken(c *gin.Context, req *Request) {
	var in firebaseTokenRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	email, err := h.external.VerifyToken(c.Request.Context(), in.IDToken, in.APIKey)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "User marked verified", gin.H{"email": email})
}

func (h *AccountHandler) ApplyOobCode(c *gin.Context, req *Request) {
	var in oobCodeRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	email, err := h.external.ApplyOobCode(c.Request.Context(), in.OobCode, in.APIKey)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Email verified and user updated", gin.H{"email": email})
}
