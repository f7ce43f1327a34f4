package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"coinvest/internal/domain"
	"coinvest/internal/middleware"
	"coinvest/internal/models"
	"coinvest/internal/repository"
	"coinvest/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DepositHandler struct {
	depositRepo *repository.DepositRepository
	cloud       cloudinary.Client
}

func NewDepositHandler(depositRepo *repository.DepositRepository, cloud cloudinary.Client) *DepositHandler {
	return &DepositHandler{depositRepo: depositRepo, cloud: cloud}
}

// Create handles POST /user/deposits (multipart). At least one of tx_hash
// and the proof image is required. An upload failure aborts the whole
// submission — no partial deposit row is persisted.
func (h *DepositHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid amount required"})
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(c.PostForm("currency")))
	if currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency required"})
		return
	}
	txHash := strings.TrimSpace(c.PostForm("tx_hash"))

	proofURL := ""
	if file, err := c.FormFile("proof"); err == nil {
		if h.cloud == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "proof uploads are not available"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read proof image"})
			return
		}
		defer f.Close()
		folder := "coinvest/deposits/" + strconv.FormatUint(uint64(userID), 10)
		publicID := "proof_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		proofURL, err = h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "proof upload failed"})
			return
		}
	}
	if txHash == "" && proofURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tx_hash or proof image required"})
		return
	}

	d := &models.Deposit{
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		TxHash:        txHash,
		ProofImageURL: proofURL,
		Status:        domain.DepositPending,
		Reference:     fmt.Sprintf("dep-%s", uuid.New().String()),
	}
	if err := h.depositRepo.Create(d); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deposit": d})
}

func (h *DepositHandler) ListMine(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	list, err := h.depositRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list})
}
