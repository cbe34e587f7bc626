package game

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	gamemodel "github.com/zhouzirui/love-arena/internal/model/game"
	gameservice "github.com/zhouzirui/love-arena/internal/service/game"
	sessionservice "github.com/zhouzirui/love-arena/internal/service/session"
	"github.com/zhouzirui/love-arena/pkg/utils"
)

// Handler 爱情游戏的HTTP处理器
type Handler struct {
	engine *gameservice.Engine
}

// New 创建游戏处理器
func New(engine *gameservice.Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes 注册游戏相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/love/propose", h.handlePropose)
	r.Post("/love/crush", h.handleCrush)
	r.Post("/love/prank", h.handlePrank)
	r.Post("/love/breakup", h.handleBreakup)
	r.Post("/love/callback", h.handleCallback)
	r.Get("/love/menu", h.handleMenu)
	r.Get("/love/help", h.handleHelp)
	r.Get("/love/vibe", h.handleVibe)
	r.Get("/love/leaderboard/{scope}", h.handleLeaderboard)
}

// startPayload 双人模式的开局请求体
type startPayload struct {
	Scope     string         `json:"scope"`
	Initiator gamemodel.User `json:"initiator"`
	Target    gamemodel.User `json:"target"`
}

func (p startPayload) valid() bool {
	return p.Scope != "" && p.Initiator.ID != ""
}

type startFunc func(r *http.Request, p startPayload) (gamemodel.Reply, error)

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request, start startFunc) {
	var payload startPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !payload.valid() {
		utils.RespondError(w, http.StatusBadRequest, "scope and initiator are required")
		return
	}

	reply, err := start(r, payload)
	if err != nil {
		respondAdmissionError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, reply)
}

// handlePropose 发起正式表白
func (h *Handler) handlePropose(w http.ResponseWriter, r *http.Request) {
	h.handleStart(w, r, func(r *http.Request, p startPayload) (gamemodel.Reply, error) {
		return h.engine.StartProposal(r.Context(), p.Scope, p.Initiator, p.Target)
	})
}

// handleCrush 投放匿名暗恋
func (h *Handler) handleCrush(w http.ResponseWriter, r *http.Request) {
	h.handleStart(w, r, func(r *http.Request, p startPayload) (gamemodel.Reply, error) {
		return h.engine.StartCrush(r.Context(), p.Scope, p.Initiator, p.Target)
	})
}

// handlePrank 发起假表白整蛊
func (h *Handler) handlePrank(w http.ResponseWriter, r *http.Request) {
	h.handleStart(w, r, func(r *http.Request, p startPayload) (gamemodel.Reply, error) {
		return h.engine.StartPrank(r.Context(), p.Scope, p.Initiator, p.Target)
	})
}

// handleBreakup 发起分手确认
func (h *Handler) handleBreakup(w http.ResponseWriter, r *http.Request) {
	h.handleStart(w, r, func(r *http.Request, p startPayload) (gamemodel.Reply, error) {
		return h.engine.StartBreakup(r.Context(), p.Scope, p.Initiator)
	})
}

// handleCallback 处理按钮回调
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Scope string         `json:"scope"`
		User  gamemodel.User `json:"user"`
		Data  string         `json:"data"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Scope == "" || payload.User.ID == "" || payload.Data == "" {
		utils.RespondError(w, http.StatusBadRequest, "scope, user and data are required")
		return
	}

	reply, err := h.engine.HandleCallback(r.Context(), payload.Scope, payload.User, payload.Data)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, reply)
}

// handleMenu 打开主菜单
func (h *Handler) handleMenu(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.engine.Menu())
}

// handleHelp 返回帮助文本
func (h *Handler) handleHelp(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.engine.Help())
}

// handleVibe 返回随机情人节氛围语
func (h *Handler) handleVibe(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.engine.Vibe(r.Context()))
}

// handleLeaderboard 返回群组排行榜
func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	reply, err := h.engine.Leaderboard(scope)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	utils.RespondJSON(w, http.StatusOK, reply)
}

// respondAdmissionError 把准入失败映射为HTTP状态码
func respondAdmissionError(w http.ResponseWriter, err error) {
	var rateLimited *sessionservice.RateLimitedError
	switch {
	case errors.As(err, &rateLimited):
		utils.RespondJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":      rateLimited.Error(),
			"retryAfter": rateLimited.RetryAfter.Seconds(),
		})
	case errors.Is(err, sessionservice.ErrScopeCapacity),
		errors.Is(err, sessionservice.ErrInitiatorCapacity),
		errors.Is(err, gameservice.ErrNotPaired):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sessionservice.ErrSelfTarget),
		errors.Is(err, sessionservice.ErrCounterpartRequired),
		errors.Is(err, sessionservice.ErrUnknownMode):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
