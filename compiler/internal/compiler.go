package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/nands/jackc/util"
)

const (
	ModeTokens = "tokens" // <Class>T.xml
	ModeTree   = "tree"   // <Class>.xml
	ModeVM     = "vm"     // <Class>.vm
)

type Options struct {
	Mode   string
	OutDir string // defaults to the directory of every source file.
}

// Compile compiles a jack file, or every jack file of a directory. Each file is compiled on
// its own, the failures of all files are returned together.
func Compile(path string, options Options) error {
	if options.Mode == "" {
		options.Mode = ModeVM
	}
	if !isValidMode(options.Mode) {
		return fmt.Errorf("compiler: unknown mode %s", options.Mode)
	}
	files, err := jackFiles(path)
	if err != nil {
		return err
	}
	T().Infof("compiler: start compiling %d files at path: %s", len(files), path)
	var result *multierror.Error
	for _, file := range files {
		err := compileFile(file, options)
		if err != nil {
			T().Errorf("compiler: %s: %v", file, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
		}
	}
	return result.ErrorOrNil()
}

func isValidMode(mode string) bool {
	return mode == ModeTokens || mode == ModeTree || mode == ModeVM
}

func jackFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !util.IsJackFile(path) {
			return nil, fmt.Errorf("compiler: %s is not a jack file", path)
		}
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		// Skip not-jack file.
		if entry.IsDir() || !util.IsJackFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("compiler: no jack file found at %s", path)
	}
	return files, nil
}

func compileFile(file string, options Options) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	output, err := CompileSource(file, string(content), options.Mode)
	if err != nil {
		return err
	}
	outDir := options.OutDir
	if outDir == "" {
		outDir = filepath.Dir(file)
	}
	outFile := filepath.Join(outDir, OutputName(file, options.Mode))
	T().Infof("compiler: write %s", outFile)
	return os.WriteFile(outFile, []byte(output), 0644)
}

// OutputName returns the name of the file written for the source file in mode.
func OutputName(file string, mode string) string {
	className := util.TrimExt(file)
	switch mode {
	case ModeTokens:
		return className + "T.xml"
	case ModeTree:
		return className + ".xml"
	}
	return className + ".vm"
}

// CompileSource compiles the content of one source unit named name.
func CompileSource(name string, content string, mode string) (string, error) {
	T().Debugf("compiler: start %s for %s", mode, name)
	switch mode {
	case ModeTokens:
		return TokenizeIntoXML(content)
	case ModeTree:
		return ParseIntoXML(content)
	case ModeVM:
		class, err := Parse(content)
		if err != nil {
			return "", err
		}
		return generateClassExpressions(class)
	}
	return "", fmt.Errorf("compiler: unknown mode %s", mode)
}

// generateClassExpressions emits the vm code of every top level expression of every
// subroutine, each listing preceded by a `// Class.subroutine expression #k` line.
func generateClassExpressions(class *TreeNode) (string, error) {
	classTable, err := BuildClassSymbolTable(class)
	if err != nil {
		return "", err
	}
	T().Debugf("%s", classTable)
	var sb strings.Builder
	for _, sub := range class.NodesNamed(SubroutineDecRule) {
		subTable, err := BuildSubroutineSymbolTable(sub, classTable.ClassName, classTable)
		if err != nil {
			return "", err
		}
		subName := sub.Tokens()[2].Content()
		T().Debugf("%s.%s: %s", classTable.ClassName, subName, subTable)
		generator := NewCodeGenerator(subTable)
		for k, expr := range topLevelExpressions(sub) {
			code, err := generator.EmitExpression(expr)
			if err != nil {
				return "", err
			}
			sb.WriteString(fmt.Sprintf("// %s.%s expression #%d\n", classTable.ClassName, subName, k))
			sb.WriteString(code + "\n")
		}
	}
	return sb.String(), nil
}

// topLevelExpressions returns the expressions of the statements of sub, in source order,
// leaving out those nested inside another expression.
func topLevelExpressions(sub *TreeNode) []*TreeNode {
	var exprs []*TreeNode
	sub.Walk(func(node *TreeNode) bool {
		if node.Name == ExpressionRule {
			exprs = append(exprs, node)
			return false
		}
		return true
	})
	return exprs
}
