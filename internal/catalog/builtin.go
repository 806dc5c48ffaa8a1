package catalog

var basePackages = []string{
	"curl", "wget", "git", "vim", "htop", "tree", "unzip",
	"build-essential", "software-properties-common",
}

var pythonPackages = []string{"python3", "python3-pip", "python3-venv", "python3-dev"}

var dockerRepoSetup = []string{
	`curl -fsSL https://download.docker.com/linux/ubuntu/gpg | gpg --dearmor -o /usr/share/keyrings/docker-archive-keyring.gpg`,
	`echo "deb [arch=amd64 signed-by=/usr/share/keyrings/docker-archive-keyring.gpg] https://download.docker.com/linux/ubuntu $(lsb_release -cs) stable" | tee /etc/apt/sources.list.d/docker.list > /dev/null`,
	`apt-get update`,
	`apt-get install -y docker-ce docker-ce-cli containerd.io docker-compose-plugin`,
	`usermod -aG docker ubuntu`,
}

const gitDefaultBranch = `sudo -u ubuntu git config --global init.defaultBranch main`

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// builtinOrder fixes the listing order of the built-in templates.
var builtinOrder = []string{
	"ubuntu-basic", "nodejs-dev", "python-dev", "go-dev", "rust-dev",
	"java-dev", "docker-dev", "web-dev", "data-science", "devops",
}

func builtins() map[string]Template {
	return map[string]Template{
		"ubuntu-basic": {
			Name:        "Ubuntu Basic",
			Description: "Basic Ubuntu environment with essential development tools",
			BaseImage:   "22.04",
			Packages:    with(basePackages, "apt-transport-https"),
			SetupScript: []string{
				`git config --global init.defaultBranch main`,
				`echo 'export EDITOR=vim' >> ~/.bashrc`,
			},
		},
		"nodejs-dev": {
			Name:        "Node.js Development",
			Description: "Complete Node.js development environment with npm, yarn, and common tools",
			BaseImage:   "22.04",
			Packages:    with(basePackages),
			SetupScript: []string{
				`curl -fsSL https://deb.nodesource.com/setup_lts.x | sudo -E bash -`,
				`apt-get install -y nodejs`,
				`npm install -g yarn`,
				`npm install -g typescript ts-node eslint prettier nodemon`,
				`mkdir -p /home/ubuntu/projects`,
				`chown ubuntu:ubuntu /home/ubuntu/projects`,
				gitDefaultBranch,
			},
		},
		"python-dev": {
			Name:        "Python Development",
			Description: "Python development environment with pip, virtualenv, and popular packages",
			BaseImage:   "22.04",
			Packages:    concat(pythonPackages, basePackages),
			SetupScript: []string{
				`python3 -m pip install --upgrade pip`,
				`pip3 install virtualenv pipenv poetry`,
				`pip3 install requests flask django fastapi`,
				`pip3 install numpy pandas matplotlib jupyter`,
				`pip3 install pytest black flake8 mypy`,
				`mkdir -p /home/ubuntu/projects`,
				`chown ubuntu:ubuntu /home/ubuntu/projects`,
				gitDefaultBranch,
			},
		},
		"go-dev": {
			Name:        "Go Development",
			Description: "Go development environment with latest Go version and common tools",
			BaseImage:   "22.04",
			Packages:    with(basePackages),
			SetupScript: []string{
				`GO_VERSION=$(curl -s 'https://go.dev/VERSION?m=text' | head -1) && wget -q https://go.dev/dl/$GO_VERSION.linux-amd64.tar.gz && rm -rf /usr/local/go && tar -C /usr/local -xzf $GO_VERSION.linux-amd64.tar.gz && rm $GO_VERSION.linux-amd64.tar.gz`,
				`echo 'export PATH=$PATH:/usr/local/go/bin' >> /etc/environment`,
				`echo 'export GOPATH=/home/ubuntu/go' >> /etc/environment`,
				`echo 'export PATH=$PATH:/usr/local/go/bin:/home/ubuntu/go/bin' >> /home/ubuntu/.bashrc`,
				`sudo -u ubuntu mkdir -p /home/ubuntu/go/{bin,src,pkg}`,
				`sudo -u ubuntu bash -c 'export PATH=$PATH:/usr/local/go/bin && go install golang.org/x/tools/gopls@latest'`,
				`sudo -u ubuntu bash -c 'export PATH=$PATH:/usr/local/go/bin && go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest'`,
				gitDefaultBranch,
			},
		},
		"rust-dev": {
			Name:        "Rust Development",
			Description: "Rust development environment with rustc, cargo, and common tools",
			BaseImage:   "22.04",
			Packages:    with(basePackages, "pkg-config", "libssl-dev"),
			SetupScript: []string{
				`sudo -u ubuntu bash -c 'curl --proto "=https" --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y'`,
				`sudo -u ubuntu bash -c 'source ~/.cargo/env && rustup component add rust-analyzer'`,
				`echo 'source ~/.cargo/env' >> /home/ubuntu/.bashrc`,
				`sudo -u ubuntu mkdir -p /home/ubuntu/projects`,
				gitDefaultBranch,
			},
		},
		"java-dev": {
			Name:        "Java Development",
			Description: "Java development environment with OpenJDK, Maven, and Gradle",
			BaseImage:   "22.04",
			Packages:    concat([]string{"openjdk-17-jdk", "maven", "gradle"}, basePackages),
			SetupScript: []string{
				`echo 'export JAVA_HOME=/usr/lib/jvm/java-17-openjdk-amd64' >> /etc/environment`,
				`echo 'export JAVA_HOME=/usr/lib/jvm/java-17-openjdk-amd64' >> /home/ubuntu/.bashrc`,
				`mkdir -p /home/ubuntu/projects`,
				`chown ubuntu:ubuntu /home/ubuntu/projects`,
				gitDefaultBranch,
			},
		},
		"docker-dev": {
			Name:        "Docker Development",
			Description: "Development environment with Docker and Docker Compose",
			BaseImage:   "22.04",
			Packages:    with(basePackages, "apt-transport-https", "ca-certificates", "gnupg", "lsb-release"),
			SetupScript: concat(dockerRepoSetup, []string{
				`mkdir -p /home/ubuntu/projects`,
				`chown ubuntu:ubuntu /home/ubuntu/projects`,
				gitDefaultBranch,
			}),
		},
		"web-dev": {
			Name:        "Full Stack Web Development",
			Description: "Complete web development environment with Node.js, Python, and database tools",
			BaseImage:   "22.04",
			Packages:    concat(pythonPackages, []string{"postgresql-client", "mysql-client", "redis-tools"}, basePackages),
			SetupScript: []string{
				`curl -fsSL https://deb.nodesource.com/setup_lts.x | sudo -E bash -`,
				`apt-get install -y nodejs`,
				`npm install -g yarn typescript eslint prettier`,
				`npm install -g @vue/cli create-react-app @angular/cli`,
				`pip3 install --upgrade pip`,
				`pip3 install django flask fastapi sqlalchemy alembic`,
				`pip3 install requests beautifulsoup4 scrapy`,
				`pip3 install pytest black flake8`,
				`mkdir -p /home/ubuntu/{projects,databases}`,
				`chown ubuntu:ubuntu /home/ubuntu/{projects,databases}`,
				gitDefaultBranch,
			},
		},
		"data-science": {
			Name:        "Data Science Environment",
			Description: "Python-based data science environment with Jupyter, pandas, and ML libraries",
			BaseImage:   "22.04",
			Packages:    concat(pythonPackages, basePackages, []string{"libhdf5-dev", "libnetcdf-dev", "pkg-config"}),
			SetupScript: []string{
				`pip3 install --upgrade pip`,
				`pip3 install numpy pandas matplotlib seaborn plotly`,
				`pip3 install scipy scikit-learn statsmodels`,
				`pip3 install jupyter jupyterlab notebook`,
				`pip3 install h5py tables xarray`,
				`pip3 install tensorflow torch torchvision`,
				`pip3 install xgboost lightgbm catboost`,
				`pip3 install pytest black flake8 mypy`,
				`pip3 install requests beautifulsoup4 openpyxl`,
				`mkdir -p /home/ubuntu/{projects,datasets,notebooks}`,
				`chown ubuntu:ubuntu /home/ubuntu/{projects,datasets,notebooks}`,
				`sudo -u ubuntu jupyter notebook --generate-config`,
				gitDefaultBranch,
			},
		},
		"devops": {
			Name:        "DevOps Environment",
			Description: "DevOps environment with Docker, Kubernetes tools, Terraform, and monitoring",
			BaseImage:   "22.04",
			Packages:    with(basePackages, "apt-transport-https", "ca-certificates", "gnupg", "lsb-release", "jq"),
			SetupScript: concat(dockerRepoSetup, []string{
				`curl -LO "https://dl.k8s.io/release/$(curl -L -s https://dl.k8s.io/release/stable.txt)/bin/linux/amd64/kubectl"`,
				`install -o root -g root -m 0755 kubectl /usr/local/bin/kubectl`,
				`wget -O- https://apt.releases.hashicorp.com/gpg | gpg --dearmor | tee /usr/share/keyrings/hashicorp-archive-keyring.gpg`,
				`echo "deb [signed-by=/usr/share/keyrings/hashicorp-archive-keyring.gpg] https://apt.releases.hashicorp.com $(lsb_release -cs) main" | tee /etc/apt/sources.list.d/hashicorp.list`,
				`apt-get update && apt-get install -y terraform`,
				`curl https://baltocdn.com/helm/signing.asc | gpg --dearmor | tee /usr/share/keyrings/helm.gpg > /dev/null`,
				`echo "deb [arch=amd64 signed-by=/usr/share/keyrings/helm.gpg] https://baltocdn.com/helm/stable/debian/ all main" | tee /etc/apt/sources.list.d/helm-stable-debian.list`,
				`apt-get update && apt-get install -y helm`,
				`curl "https://awscli.amazonaws.com/awscli-exe-linux-x86_64.zip" -o "awscliv2.zip"`,
				`unzip awscliv2.zip && ./aws/install && rm -rf aws awscliv2.zip`,
				`mkdir -p /home/ubuntu/{projects,infrastructure,configs}`,
				`chown ubuntu:ubuntu /home/ubuntu/{projects,infrastructure,configs}`,
				gitDefaultBranch,
			}),
		},
	}
}
