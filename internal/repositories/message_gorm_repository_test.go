package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"automarket/internal/models"
	"automarket/internal/repositories"
)

func TestGORMMessageRepository_Conversation(t *testing.T) {
	db := testDB(t)
	repo := repositories.NewGORMMessageRepository(db)
	seller := seedUser(t, db, "seller@example.com", models.RoleUser)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleUser)
	lurker := seedUser(t, db, "lurker@example.com", models.RoleUser)
	car := seedCar(t, db, seller.ID, "Toyota", models.CarStatusActive)

	ask := &models.Message{CarID: car.ID, SenderID: buyer.ID, ReceiverID: seller.ID, Content: "still available?"}
	reply := &models.Message{CarID: car.ID, SenderID: seller.ID, ReceiverID: buyer.ID, Content: "yes"}
	noise := &models.Message{CarID: car.ID, SenderID: lurker.ID, ReceiverID: seller.ID, Content: "price?"}
	for _, message := range []*models.Message{ask, reply, noise} {
		assert.NoError(t, repo.Create(message))
	}

	// Both directions of the pair, oldest first, nothing from third parties.
	thread, err := repo.GetConversation(car.ID, buyer.ID, seller.ID)
	assert.NoError(t, err)
	assert.Len(t, thread, 2)
	assert.Equal(t, ask.ID, thread[0].ID)
	assert.Equal(t, reply.ID, thread[1].ID)

	// The thread reads the same from either side.
	mirrored, err := repo.GetConversation(car.ID, seller.ID, buyer.ID)
	assert.NoError(t, err)
	assert.Equal(t, thread, mirrored)
}

func TestGORMMessageRepository_MarkRead(t *testing.T) {
	db := testDB(t)
	repo := repositories.NewGORMMessageRepository(db)
	seller := seedUser(t, db, "seller@example.com", models.RoleUser)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleUser)
	car := seedCar(t, db, seller.ID, "Toyota", models.CarStatusActive)

	message := &models.Message{CarID: car.ID, SenderID: buyer.ID, ReceiverID: seller.ID, Content: "hello"}
	assert.NoError(t, repo.Create(message))
	assert.False(t, message.IsRead)

	assert.NoError(t, repo.MarkRead([]uint{message.ID}))

	inbox, err := repo.GetUserMessages(seller.ID)
	assert.NoError(t, err)
	assert.Len(t, inbox, 1)
	assert.True(t, inbox[0].IsRead)

	// An empty batch is a no-op.
	assert.NoError(t, repo.MarkRead(nil))
}
