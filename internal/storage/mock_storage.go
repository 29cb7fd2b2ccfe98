package storage

import (
	"github.com/MosinFAM/cms-moderation/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetItemByID(itemType models.ContentType, id string) (*models.ContentItem, error) {
	args := m.Called(itemType, id)
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockStorage) UpdateItemField(itemType models.ContentType, id, field string, value bool) error {
	args := m.Called(itemType, id, field, value)
	return args.Error(0)
}

func (m *MockStorage) DeleteItem(itemType models.ContentType, id string) error {
	args := m.Called(itemType, id)
	return args.Error(0)
}

func (m *MockStorage) AddComment(comment models.Comment) (*models.Comment, error) {
	args := m.Called(comment)
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockStorage) GetCommentByID(id string) (*models.Comment, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockStorage) GetCommentsByParentID(parentID string) ([]*models.Comment, error) {
	args := m.Called(parentID)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockStorage) GetCommentsByPost(postID string, postType models.ContentType) ([]*models.Comment, error) {
	args := m.Called(postID, postType)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockStorage) DeleteCommentsByIDs(ids []string) error {
	args := m.Called(ids)
	return args.Error(0)
}

func (m *MockStorage) SubscribeToComments(postID string, postType models.ContentType) (<-chan *models.Comment, error) {
	args := m.Called(postID, postType)
	return args.Get(0).(chan *models.Comment), args.Error(1)
}
