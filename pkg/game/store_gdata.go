package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// gdata 中快照所在的对象名
const sessionObject = "session"

// GdataStore 基于 gdata 的跨平台本地存储
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdataStore 打开应用数据目录
func OpenGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata manager: %w", err)
	}
	return NewGdataStore(manager), nil
}

// NewGdataStore 包装已有的 gdata Manager
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	return &GdataStore{manager: manager}
}

func (s *GdataStore) Load(key string) ([]byte, error) {
	if !s.manager.ObjectPropExists(sessionObject, key) {
		return nil, ErrNoSnapshot
	}
	data, err := s.manager.LoadObjectProp(sessionObject, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	// 空内容表示已被清除
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

func (s *GdataStore) Save(key string, data []byte) error {
	if err := s.manager.SaveObjectProp(sessionObject, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete 用空内容覆盖快照
func (s *GdataStore) Delete(key string) error {
	if !s.manager.ObjectPropExists(sessionObject, key) {
		return nil
	}
	return s.Save(key, []byte{})
}
