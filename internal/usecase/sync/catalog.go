package sync

import (
	"context"
	"log/slog"

	"hotel-booking/internal/domain/shared/money"
	"hotel-booking/internal/infra/peer"
	"hotel-booking/internal/pkg/errs"
)

// PeerCatalog is the slice of the peer hotel service client the sync needs.
type PeerCatalog interface {
	GetAllRooms(ctx context.Context) ([]peer.RoomDTO, error)
	ListServices(ctx context.Context) ([]peer.ServiceDTO, error)
}

type CatalogWriter interface {
	UpsertRoom(ctx context.Context, number, roomType string, capacity int, pricePerNight int64, isAvailable bool) error
	UpsertService(ctx context.Context, title, description string, pricePerDay int64) error
}

// CatalogSync mirrors the peer's room and service catalog into local storage.
// Each run is best-effort per row: one malformed entry is skipped and logged
// rather than aborting the whole sweep.
type CatalogSync struct {
	peer   PeerCatalog
	writer CatalogWriter
	logger *slog.Logger
}

func NewCatalogSync(peerClient PeerCatalog, writer CatalogWriter, logger *slog.Logger) *CatalogSync {
	return &CatalogSync{
		peer:   peerClient,
		writer: writer,
		logger: logger,
	}
}

func (s *CatalogSync) SyncOnce(ctx context.Context) error {
	if err := s.syncRooms(ctx); err != nil {
		return err
	}
	return s.syncServices(ctx)
}

func (s *CatalogSync) syncRooms(ctx context.Context) error {
	rooms, err := s.peer.GetAllRooms(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to fetch rooms from peer")
	}

	synced := 0
	for _, dto := range rooms {
		price, parseErr := money.Parse(dto.PricePerNight)
		if parseErr != nil {
			s.logger.Warn("skipping room with unparsable price",
				"number", dto.Number, "price", dto.PricePerNight)
			continue
		}
		if upsertErr := s.writer.UpsertRoom(ctx, dto.Number, dto.RoomType, dto.Capacity, price.Kopecks(), dto.IsAvailable); upsertErr != nil {
			return errs.Wrap(upsertErr, "failed to upsert room")
		}
		synced++
	}
	s.logger.Info("room catalog synced", "received", len(rooms), "upserted", synced)
	return nil
}

func (s *CatalogSync) syncServices(ctx context.Context) error {
	services, err := s.peer.ListServices(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to fetch services from peer")
	}

	synced := 0
	for _, dto := range services {
		price, parseErr := money.Parse(dto.PricePerDay)
		if parseErr != nil {
			s.logger.Warn("skipping service with unparsable price",
				"title", dto.Title, "price", dto.PricePerDay)
			continue
		}
		if upsertErr := s.writer.UpsertService(ctx, dto.Title, dto.Description, price.Kopecks()); upsertErr != nil {
			return errs.Wrap(upsertErr, "failed to upsert service")
		}
		synced++
	}
	s.logger.Info("service catalog synced", "received", len(services), "upserted", synced)
	return nil
}
