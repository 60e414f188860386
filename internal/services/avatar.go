package services

import (
  "bytes"
  "context"
  "fmt"
  "hash/fnv"
  "image"
  "image/color"
  "os"
  "path/filepath"
  "strings"
  "time"
  "unicode"

  _ "image/jpeg"
  _ "image/png"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "github.com/google/uuid"
  "golang.org/x/image/draw"
  "golang.org/x/image/font"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// AvatarService renders initials avatars and stores them on local disk
// under AVATAR_DIR. Files are served back through the static route, so
// AvatarURL is a server-relative path.
type AvatarService interface {
  CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
  SetUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
}

type avatarService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo

  dir      string
  palette  []color.NRGBA
  fontFace font.Face
}

var avatarPalette = []color.NRGBA{
  {R: 0xE6, G: 0x5A, B: 0x5A, A: 0xFF},
  {R: 0xE6, G: 0x8A, B: 0x3C, A: 0xFF},
  {R: 0x3C, G: 0x9E, B: 0x5A, A: 0xFF},
  {R: 0x2E, G: 0x86, B: 0xC1, A: 0xFF},
  {R: 0x7D, G: 0x5F, B: 0xC7, A: 0xFF},
  {R: 0xC7, G: 0x5F, B: 0xA1, A: 0xFF},
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  dir := strings.TrimSpace(os.Getenv("AVATAR_DIR"))
  if dir == "" {
    return nil, fmt.Errorf("Env var AVATAR_DIR is empty")
  }
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return nil, fmt.Errorf("could not create avatar dir: %w", err)
  }

  fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
  if fontPath == "" {
    return nil, fmt.Errorf("Env var AVATAR_FONT is empty")
  }
  serviceLog.Info("Loading avatar font", "font", fontPath)

  face, err := loadFontFace(fontPath, 206)
  if err != nil {
    return nil, fmt.Errorf("could not load avatar font: %w", err)
  }

  return &avatarService{
    db:       db,
    log:      serviceLog,
    userRepo: userRepo,
    dir:      dir,
    palette:  avatarPalette,
    fontFace: face,
  }, nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
  if user == nil || user.ID == uuid.Nil {
    return fmt.Errorf("user required")
  }

  buf, err := as.renderInitialsAvatar(user)
  if err != nil {
    return err
  }
  return as.storeAvatar(ctx, tx, user, buf.Bytes())
}

func (as *avatarService) SetUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
  if user == nil || user.ID == uuid.Nil {
    return fmt.Errorf("user required")
  }

  processed, err := processUploadedAvatar(raw, 512)
  if err != nil {
    return err
  }
  return as.storeAvatar(ctx, tx, user, processed.Bytes())
}

// storeAvatar writes a versioned file, points the user at it, then removes
// the previous file best-effort.
func (as *avatarService) storeAvatar(ctx context.Context, tx *gorm.DB, user *types.User, data []byte) error {
  oldURL := strings.TrimSpace(user.AvatarURL)

  fileName := fmt.Sprintf("%s_%d.png", user.ID.String(), time.Now().UnixNano())
  if err := os.WriteFile(filepath.Join(as.dir, fileName), data, 0o644); err != nil {
    return fmt.Errorf("failed to write avatar file: %w", err)
  }

  newURL := "/static/avatars/" + fileName
  if err := as.userRepo.SetAvatarURL(ctx, tx, user.ID, newURL); err != nil {
    return fmt.Errorf("failed to update avatar url: %w", err)
  }
  user.AvatarURL = newURL

  if oldURL != "" && oldURL != newURL {
    oldFile := filepath.Base(oldURL)
    if err := os.Remove(filepath.Join(as.dir, oldFile)); err != nil && !os.IsNotExist(err) {
      as.log.Warn("failed to delete old avatar (ignored)", "file", oldFile, "error", err)
    }
  }
  return nil
}

func (as *avatarService) renderInitialsAvatar(user *types.User) (bytes.Buffer, error) {
  const size = 512
  var buf bytes.Buffer

  dc := gg.NewContext(size, size)

  dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
  dc.Clip()

  dc.SetColor(as.colorForUser(user.ID))
  dc.DrawRectangle(0, 0, float64(size), float64(size))
  dc.Fill()

  initials := computeInitials(user.DisplayName)

  dc.SetFontFace(as.fontFace)
  tw, th := dc.MeasureString(initials)
  cx, cy := float64(size)/2, float64(size)/2

  dc.SetColor(color.White)
  dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

  if err := dc.EncodePNG(&buf); err != nil {
    return buf, fmt.Errorf("failed to encode PNG: %w", err)
  }
  return buf, nil
}

// colorForUser picks a palette color from the user ID so the same user
// always renders on the same background.
func (as *avatarService) colorForUser(userID uuid.UUID) color.NRGBA {
  h := fnv.New32a()
  _, _ = h.Write(userID[:])
  return as.palette[int(h.Sum32())%len(as.palette)]
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
  var out bytes.Buffer

  img, _, err := image.Decode(bytes.NewReader(raw))
  if err != nil {
    return out, fmt.Errorf("decode image: %w", err)
  }

  // Center-crop to square
  b := img.Bounds()
  w := b.Dx()
  h := b.Dy()
  side := w
  if h < w {
    side = h
  }
  x0 := b.Min.X + (w-side)/2
  y0 := b.Min.Y + (h-side)/2

  cropRect := image.Rect(0, 0, side, side)
  cropped := image.NewRGBA(cropRect)
  draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

  dst := image.NewRGBA(image.Rect(0, 0, size, size))
  draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

  dc := gg.NewContext(size, size)
  dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
  dc.Clip()
  dc.DrawImage(dst, 0, 0)

  if err := dc.EncodePNG(&out); err != nil {
    return out, fmt.Errorf("encode png: %w", err)
  }
  return out, nil
}

// computeInitials takes the first rune of the first two words of the
// display name. Single-word names yield one letter.
func computeInitials(displayName string) string {
  words := strings.Fields(displayName)
  var sb strings.Builder
  for i, word := range words {
    if i >= 2 {
      break
    }
    runes := []rune(word)
    sb.WriteRune(unicode.ToUpper(runes[0]))
  }
  if sb.Len() == 0 {
    return "?"
  }
  return sb.String()
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
  fontBytes, err := os.ReadFile(fontPath)
  if err != nil {
    return nil, fmt.Errorf("failed to read font file: %w", err)
  }
  parsedFont, err := truetype.Parse(fontBytes)
  if err != nil {
    return nil, fmt.Errorf("failed to parse TTF: %w", err)
  }
  face := truetype.NewFace(parsedFont, &truetype.Options{
    Size:    size,
    DPI:     72,
    Hinting: font.HintingNone,
  })
  return face, nil
}
