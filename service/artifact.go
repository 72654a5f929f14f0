package service

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/model"
)

// 模型产物文件名：两个模型独立落盘、独立加载
const (
	alsArtifactFile   = "als_model.json"
	tfidfArtifactFile = "tfidf_model.json"
)

// artifactStore 负责模型产物在本地磁盘上的读写。
//
// 格式为显式的 JSON（隐向量展平为数值数组、词表为有序映射），跨语言可读；
// 往返保证：load(save(M)) 对任意查询产出与 M 相同的结果。
// 读写均为一次性的整文件操作，不持有长生命周期的文件句柄。
type artifactStore struct {
	dir string
}

func newArtifactStore(dir string) *artifactStore {
	return &artifactStore{dir: dir}
}

func (s *artifactStore) path(file string) string {
	return filepath.Join(s.dir, file)
}

// SaveALS 将协同过滤模型落盘（覆盖旧产物）。
func (s *artifactStore) SaveALS(m *model.ALSModel) error {
	return s.save(alsArtifactFile, m.State())
}

// LoadALS 加载协同过滤模型；无产物时返回 (nil, nil)。
func (s *artifactStore) LoadALS() (*model.ALSModel, error) {
	var st model.ALSState
	ok, err := s.load(alsArtifactFile, &st)
	if err != nil || !ok {
		return nil, err
	}
	return model.LoadALS(&st)
}

// SaveTFIDF 将内容模型落盘（覆盖旧产物）。
func (s *artifactStore) SaveTFIDF(m *model.TFIDFModel) error {
	return s.save(tfidfArtifactFile, m.State())
}

// LoadTFIDF 加载内容模型；无产物时返回 (nil, nil)。
func (s *artifactStore) LoadTFIDF() (*model.TFIDFModel, error) {
	var st model.TFIDFState
	ok, err := s.load(tfidfArtifactFile, &st)
	if err != nil || !ok {
		return nil, err
	}
	return model.LoadTFIDF(&st)
}

// save 编码并原子写入产物；未配置目录时为 no-op（纯内存模式）。
func (s *artifactStore) save(file string, state any) error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return core.NewDomainError(core.ModuleService, core.ErrorCodePersistence, "service: create model dir: "+err.Error())
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return core.NewDomainError(core.ModuleService, core.ErrorCodePersistence, "service: encode artifact: "+err.Error())
	}

	// 先写临时文件再重命名：一次崩溃不会留下半截产物
	tmp := s.path(file) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return core.NewDomainError(core.ModuleService, core.ErrorCodePersistence, "service: write artifact: "+err.Error())
	}
	if err := os.Rename(tmp, s.path(file)); err != nil {
		_ = os.Remove(tmp)
		return core.NewDomainError(core.ModuleService, core.ErrorCodePersistence, "service: replace artifact: "+err.Error())
	}
	return nil
}

// load 读取并解码产物；文件不存在返回 (false, nil)，损坏返回 PERSISTENCE 错误。
func (s *artifactStore) load(file string, out any) (bool, error) {
	if s.dir == "" {
		return false, nil
	}
	raw, err := os.ReadFile(s.path(file))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, core.NewDomainError(core.ModuleService, core.ErrorCodePersistence, "service: read artifact: "+err.Error())
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, core.NewDomainError(core.ModuleService, core.ErrorCodePersistence, "service: decode artifact: "+err.Error())
	}
	return true, nil
}
