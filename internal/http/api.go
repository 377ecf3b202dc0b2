package http

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gmscreen/internal/domain"
	"gmscreen/internal/service"
	"gmscreen/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	campaigns  service.CampaignService
	characters service.CharacterService
	journal    service.JournalService
	storage    storage.Service
	bucket     string
	keyPrefix  string
	jwtSecret  []byte
	tokenTTL   time.Duration
	logger     *logrus.Logger
}

func NewHandler(
	users service.UserService,
	campaigns service.CampaignService,
	characters service.CharacterService,
	journal service.JournalService,
	store storage.Service,
	bucket, keyPrefix string,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:      users,
		campaigns:  campaigns,
		characters: characters,
		journal:    journal,
		storage:    store,
		bucket:     bucket,
		keyPrefix:  keyPrefix,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", h.sessionGate)

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/auth/session", h.session)
	}

	authed := api.Group("", h.requireAuth())
	{
		authed.GET("/navigation", h.navigation)

		authed.GET("/campaigns", h.listCampaigns)
		authed.POST("/campaigns", h.createCampaign)
		authed.GET("/campaigns/:id", h.getCampaign)

		authed.GET("/campaigns/:id/characters", h.listCharacters)
		authed.POST("/campaigns/:id/characters", h.createCharacter)
		authed.GET("/characters/:id/items", h.listItems)
		authed.POST("/characters/:id/items", h.createItem)

		authed.GET("/campaigns/:id/journal", h.listJournalEntries)
		authed.POST("/campaigns/:id/journal", h.createJournalEntry)

		authed.POST("/campaigns/:id/assets", h.uploadAsset)
		authed.GET("/campaigns/:id/assets", h.listAssets)
		authed.DELETE("/campaigns/:id/assets", h.deleteAssets)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// respondError maps service errors onto HTTP statuses. Probe failures carry
// a hint that the backing schema may not be initialized, so the message
// stays actionable.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
			"hint":  "check that the database schema has been initialized",
		})
	case errors.Is(err, service.ErrMissingUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCampaignNotFound), errors.Is(err, service.ErrCharacterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyCampaignName),
		errors.Is(err, service.ErrEmptyCharacterName),
		errors.Is(err, service.ErrEmptyItemName),
		errors.Is(err, service.ErrEmptyEntryTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type createCampaignRequest struct {
	Name       string `json:"name" binding:"required"`
	GameSystem string `json:"game_system"`
}

func (h *Handler) listCampaigns(c *gin.Context) {
	campaigns, err := h.campaigns.ListCampaigns(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Errorf("list campaigns: %v", err)
		h.respondError(c, err)
		return
	}

	resp := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		resp[i] = campaignToResponse(campaigns[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"campaigns":    resp,
		"game_systems": domain.SuggestedGameSystems(),
	})
}

func (h *Handler) createCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaigns.CreateCampaign(c.Request.Context(), currentUserID(c), req.Name, req.GameSystem)
	if err != nil {
		h.logger.Errorf("create campaign: %v", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaignToResponse(*campaign))
}

func (h *Handler) getCampaign(c *gin.Context) {
	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaignToResponse(*campaign))
}

type createCharacterRequest struct {
	Name  string         `json:"name" binding:"required"`
	IsNPC bool           `json:"is_npc"`
	Data  map[string]any `json:"data"`
}

func (h *Handler) listCharacters(c *gin.Context) {
	characters, err := h.characters.ListCharacters(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CharacterResponse, len(characters))
	for i := range characters {
		resp[i] = characterToResponse(characters[i])
	}
	c.JSON(http.StatusOK, gin.H{"characters": resp})
}

func (h *Handler) createCharacter(c *gin.Context) {
	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	character, err := h.characters.CreateCharacter(c.Request.Context(), currentUserID(c), c.Param("id"), req.Name, req.IsNPC, req.Data)
	if err != nil {
		h.logger.Errorf("create character: %v", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, characterToResponse(*character))
}

type createItemRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Quantity    int            `json:"quantity"`
	Properties  map[string]any `json:"properties"`
}

func (h *Handler) listItems(c *gin.Context) {
	items, err := h.characters.ListItems(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = itemToResponse(items[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.characters.CreateItem(c.Request.Context(), currentUserID(c), c.Param("id"), req.Name, req.Description, req.Quantity, req.Properties)
	if err != nil {
		h.logger.Errorf("create item: %v", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, itemToResponse(*item))
}

type createJournalEntryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

func (h *Handler) listJournalEntries(c *gin.Context) {
	entries, err := h.journal.ListEntries(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		resp[i] = journalEntryToResponse(entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"entries": resp})
}

func (h *Handler) createJournalEntry(c *gin.Context) {
	var req createJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.journal.CreateEntry(c.Request.Context(), currentUserID(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.logger.Errorf("create journal entry: %v", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, journalEntryToResponse(*entry))
}

func (h *Handler) assetPrefix(campaignID string) string {
	prefix := fmt.Sprintf("campaigns/%s/", campaignID)
	if base := strings.Trim(h.keyPrefix, "/"); base != "" {
		prefix = base + "/" + prefix
	}
	return prefix
}

func (h *Handler) uploadAsset(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "asset storage is not configured"})
		return
	}

	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	key := h.assetPrefix(campaign.ID) + path.Base(file.Filename)
	location, err := h.storage.UploadObject(
		c.Request.Context(),
		storage.UploadOptions{Bucket: h.bucket},
		key,
		file.Header.Get("Content-Type"),
		src,
	)
	if err != nil {
		h.logger.Errorf("upload asset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location})
}

func (h *Handler) listAssets(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "asset storage is not configured"})
		return
	}

	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.assetPrefix(campaign.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, gin.H{"assets": resp})
}

func (h *Handler) deleteAssets(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "asset storage is not configured"})
		return
	}

	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.storage.DeletePrefix(c.Request.Context(), h.bucket, h.assetPrefix(campaign.ID)); err != nil {
		h.logger.Errorf("delete assets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": campaign.ID})
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type CampaignResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	GameSystem string `json:"game_system"`
	CreatedAt  string `json:"created_at"`
}

type CharacterResponse struct {
	ID         string         `json:"id"`
	CampaignID string         `json:"campaign_id"`
	Name       string         `json:"name"`
	IsNPC      bool           `json:"is_npc"`
	Data       map[string]any `json:"data"`
	CreatedAt  string         `json:"created_at"`
}

type ItemResponse struct {
	ID               string         `json:"id"`
	OwnerCharacterID string         `json:"owner_character_id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Quantity         int            `json:"quantity"`
	Properties       map[string]any `json:"properties"`
	CreatedAt        string         `json:"created_at"`
}

type JournalEntryResponse struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func campaignToResponse(campaign domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:         campaign.ID,
		UserID:     campaign.UserID,
		Name:       campaign.Name,
		GameSystem: campaign.GameSystem,
		CreatedAt:  campaign.CreatedAt.Format(time.RFC3339),
	}
}

func characterToResponse(character domain.Character) CharacterResponse {
	return CharacterResponse{
		ID:         character.ID,
		CampaignID: character.CampaignID,
		Name:       character.Name,
		IsNPC:      character.IsNPC,
		Data:       character.Data,
		CreatedAt:  character.CreatedAt.Format(time.RFC3339),
	}
}

func itemToResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:               item.ID,
		OwnerCharacterID: item.OwnerCharacterID,
		Name:             item.Name,
		Description:      item.Description,
		Quantity:         item.Quantity,
		Properties:       item.Properties,
		CreatedAt:        item.CreatedAt.Format(time.RFC3339),
	}
}

func journalEntryToResponse(entry domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:         entry.ID,
		CampaignID: entry.CampaignID,
		Title:      entry.Title,
		Content:    entry.Content,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	}
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
